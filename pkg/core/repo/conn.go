// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// TxHandler is a callback which receives an ongoing transaction.
// Returning a nil error commits the transaction, while a non-nil error
// (or a panic) rolls it back.
type TxHandler func(context.Context, Tx) error

// Conn represents a database connection which is borrowed from a Pool.
// Statements which run on a Conn directly are auto-committed.
type Conn interface {
	Queryer

	// Tx begins a transaction with the default isolation level of
	// the DBMS (i.e., READ-COMMITTED for PostgreSQL) and passes it to
	// the handler.
	Tx(ctx context.Context, handler TxHandler) error

	// TxWithIsolation is like Tx, but begins the transaction with the
	// given isolation level. A check-then-act sequence which must not
	// interleave with concurrent ones (e.g., checking for overlapping
	// reservations and then inserting a new one) should use the
	// Serializable level. A serialization failure at commit time is
	// reported as a cerr.Conflict error wrapping
	// model.ErrConcurrentUpdate and no automatic retry is attempted.
	TxWithIsolation(
		ctx context.Context, level IsolationLevel, handler TxHandler,
	) error

	// IsConn method prevents a non-Conn object (such as a Tx) to
	// mistakenly implement the Conn interface.
	IsConn()
}

// IsolationLevel specifies the isolation level of a transaction.
type IsolationLevel int

// Supported isolation levels. The zero value asks for the DBMS default.
const (
	DefaultIsolation IsolationLevel = iota
	ReadCommitted
	RepeatableRead
	Serializable
)

// String returns the SQL name of the isolation level.
func (l IsolationLevel) String() string {
	switch l {
	case ReadCommitted:
		return "READ COMMITTED"
	case RepeatableRead:
		return "REPEATABLE READ"
	case Serializable:
		return "SERIALIZABLE"
	default:
		return "DEFAULT"
	}
}
