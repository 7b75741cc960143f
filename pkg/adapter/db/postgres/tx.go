// Copyright (c) 2023 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/momeni/catways/pkg/core/repo"
	"gorm.io/gorm"
)

// Tx is a transaction which is begun by Conn.TxWithIsolation. It may
// not be used concurrently. The reservations, catways, users, and
// import use cases run their check-then-write sequences in
// SERIALIZABLE transactions, so two requests which checked the same
// catway can not both commit; the loser gets a serialization failure
// which MapError reports as model.ErrConcurrentUpdate. See
// https://www.postgresql.org/docs/current/transaction-iso.html#XACT-SERIALIZABLE
//
// The catwaysrp, reservationsrp, and usersrp packages run their
// queries through the embedded *gorm.DB (see GORM), while the schema
// initializers use Exec and Query for DDL and catalog queries.
type Tx struct {
	*gorm.DB
}

// Exec runs sql with args and returns the number of affected rows.
// Without args, sql may hold several semicolon separated statements,
// which is how stlmig1 creates the catweb1 tables. With args, sql must
// be a single statement and may use $1, ?, or @name placeholders.
// Constraint violations are classified by MapError.
func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	res := tx.DB.WithContext(ctx).Exec(sql, args...)
	if err := res.Error; err != nil {
		return 0, MapError(err)
	}
	return res.RowsAffected, nil
}

// Query runs the sql statement with args and returns its result set.
// The returned Rows must be closed before the next statement is run on
// this transaction.
func (tx *Tx) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	rows, err := tx.DB.WithContext(ctx).Raw(sql, args...).Rows()
	return rowsAdapter{rows}, MapError(err)
}

// IsTx marks Tx as a repo.Tx, so a Conn may not be passed instead.
func (tx *Tx) IsTx() {
}

// GORM returns the embedded *gorm.DB in a session bound to ctx.
func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}
