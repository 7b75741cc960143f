// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Command catweb runs the harbor catways and reservations web server
// and its database management actions.
package main

import "github.com/momeni/catways/cmd/catweb/command"

func main() {
	command.Execute()
}
