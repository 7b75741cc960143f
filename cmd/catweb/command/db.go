// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import "github.com/spf13/cobra"

const credsRenewalMessage = `
The admin role password is read from the .pgpass file in the pass-dir
directory (as configured in the config file). Both of the admin and
normal roles passwords are renewed and written into .pgpass.new first,
which is moved over the .pgpass file after a successful commit. If an
initialization is interrupted, the .pgpass.new file is tried by the
next connection attempt.`

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used and for loading existing catways
and reservations (e.g., exported from another installation), the
import may be used.`,
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
