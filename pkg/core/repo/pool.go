// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// ConnHandler is a callback which receives a borrowed connection.
// The connection is returned to its pool when the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a pool of database connections. Use cases borrow
// one connection per operation using the Conn method and pass it (or
// a transaction which is created on it) to the repositories.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
	Close() error
}
