// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sch1 provides database schema major version 1 verification
// logic. This implementation may be instantiated indirectly using
// the github.com/momeni/catways/internal/test/schema package.
package sch1

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/adapter/db/postgres/catwaysrp"
	"github.com/momeni/catways/pkg/adapter/db/postgres/migration/settle/stlmig1"
	"github.com/momeni/catways/pkg/adapter/db/postgres/reservationsrp"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These constants present the relevant major, minor, and patch semantic
// versions of this schema verifier package. They follow the stlmig1
// package because whenever a new minor version is released, this
// verifier needs to verify its changes too.
const (
	Major = stlmig1.Major
	Minor = stlmig1.Minor
	Patch = stlmig1.Patch
)

// errRollback is returned by the verification transactions, so their
// temporary rows are never committed.
var errRollback = errors.New("rollback")

// Verifier implements the schema major version 1 verification logic. It
// implements github.com/momeni/catways/internal/test/schema.Verifier
// interface and wraps a database connection as noted in New function.
type Verifier struct {
	c repo.Conn // database connection which is used for testing
}

// New instantiates a Verifier struct, wrapping the `c` database
// connection.
func New(c repo.Conn) *Verifier {
	return &Verifier{c}
}

var expectedColumns = map[string][]string{
	"catways": {"id", "number", "type", "state"},
	"reservations": {
		"id", "catway_number", "client_name", "boat_name",
		"start_date", "end_date",
	},
	"users": {"id", "username", "email", "password_hash"},
}

// VerifySchema checks the tables columns of the current schema and
// then exercises its constraints in a transaction which is rolled
// back, namely the unique catway numbers, both sides of the
// reservations foreign key, and the exclusion of overlapping
// reservations.
func (v *Verifier) VerifySchema(ctx context.Context, t *testing.T) {
	for table, cols := range expectedColumns {
		rows, err := v.c.Query(ctx, `SELECT column_name
FROM information_schema.columns
WHERE table_schema=current_schema() AND table_name=$1
ORDER BY ordinal_position`, table)
		if !assert.NoError(t, err, "querying %q columns", table) {
			continue
		}
		var actual []string
		for rows.Next() {
			var col string
			if assert.NoError(t, rows.Scan(&col)) {
				actual = append(actual, col)
			}
		}
		rows.Close()
		assert.NoError(t, rows.Err(), "iterating %q columns", table)
		assert.Equal(t, cols, actual, "columns of %q table", table)
	}

	err := v.c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		cq := catwaysrp.New().Tx(tx)
		c := &model.Catway{
			ID: uuid.New(), Number: 9001,
			Type: model.BerthTypeLong, State: "ok",
		}
		_, err := cq.Create(ctx, c)
		require.NoError(t, err, "creating a catway")
		dup := *c
		dup.ID = uuid.New()
		_, err = cq.Create(ctx, &dup)
		assert.True(
			t, cerr.Is(err, cerr.KindConflict),
			"duplicate catway number: %v", err,
		)
		return errRollback
	})
	assert.ErrorIs(t, err, errRollback)

	err = v.c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		cq := catwaysrp.New().Tx(tx)
		rq := reservationsrp.New().Tx(tx)
		_, err := cq.Create(ctx, &model.Catway{
			ID: uuid.New(), Number: 9002,
			Type: model.BerthTypeShort, State: "ok",
		})
		require.NoError(t, err, "creating a catway")
		start := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
		_, err = rq.Create(ctx, &model.Reservation{
			ID: uuid.New(), CatwayNumber: 9002,
			ClientName: "Alice", BoatName: "Nautilus",
			StartDate: start, EndDate: start.AddDate(0, 0, 3),
		})
		require.NoError(t, err, "creating a reservation")
		_, err = rq.Create(ctx, &model.Reservation{
			ID: uuid.New(), CatwayNumber: 9002,
			ClientName: "Bob", BoatName: "Calypso",
			StartDate: start.AddDate(0, 0, 3),
			EndDate:   start.AddDate(0, 0, 5),
		})
		assert.True(
			t, cerr.Is(err, cerr.KindConflict),
			"closed ranges sharing one end overlap: %v", err,
		)
		return errRollback
	})
	assert.ErrorIs(t, err, errRollback)

	err = v.c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		_, err := reservationsrp.New().Tx(tx).Create(ctx, &model.Reservation{
			ID: uuid.New(), CatwayNumber: 9003,
			ClientName: "Alice", BoatName: "Nautilus",
			StartDate: time.Now(), EndDate: time.Now(),
		})
		assert.True(
			t, cerr.Is(err, cerr.KindNotFound),
			"reserving a missing catway: %v", err,
		)
		assert.ErrorIs(t, err, model.ErrCatwayNotFound)
		return errRollback
	})
	assert.ErrorIs(t, err, errRollback)

	err = v.c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
		cq := catwaysrp.New().Tx(tx)
		c, err := cq.Create(ctx, &model.Catway{
			ID: uuid.New(), Number: 9004,
			Type: model.BerthTypeShort, State: "ok",
		})
		require.NoError(t, err, "creating a catway")
		start := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
		_, err = reservationsrp.New().Tx(tx).Create(ctx, &model.Reservation{
			ID: uuid.New(), CatwayNumber: 9004,
			ClientName: "Alice", BoatName: "Nautilus",
			StartDate: start, EndDate: start.AddDate(0, 0, 1),
		})
		require.NoError(t, err, "creating a reservation")
		err = cq.Delete(ctx, c.ID)
		assert.True(
			t, cerr.Is(err, cerr.KindConflict),
			"deleting a reserved catway: %v", err,
		)
		assert.ErrorIs(t, err, model.ErrCatwayInUse)
		return errRollback
	})
	assert.ErrorIs(t, err, errRollback)
}

// VerifyDevData checks for presence of the development suitable initial
// data and marks possible issues using the `t` testing argument.
// Presence of extra rows is acceptable.
func (v *Verifier) VerifyDevData(ctx context.Context, t *testing.T) {
	catways, err := catwaysrp.New().Conn(v.c).List(ctx)
	require.NoError(t, err, "listing catways")
	numbers := make(map[int]model.BerthType, len(catways))
	for _, c := range catways {
		numbers[c.Number] = c.Type
	}
	for n, bt := range map[int]model.BerthType{
		1: model.BerthTypeLong, 2: model.BerthTypeLong,
		3: model.BerthTypeShort, 4: model.BerthTypeShort,
		5: model.BerthTypeShort,
	} {
		assert.Equal(t, bt, numbers[n], "type of catway %d", n)
	}
	rs, err := reservationsrp.New().Conn(v.c).ListByCatway(ctx, 2)
	require.NoError(t, err, "listing reservations of catway 2")
	if assert.Len(t, rs, 2, "catway 2 reservations") {
		assert.Equal(t, "Camille Dubois", rs[0].ClientName)
		assert.Equal(t, "Le Sillage", rs[1].BoatName)
	}
}

// VerifyProdData checks that the production initialization left the
// catways, reservations, and users tables empty.
func (v *Verifier) VerifyProdData(ctx context.Context, t *testing.T) {
	catways, err := catwaysrp.New().Conn(v.c).List(ctx)
	require.NoError(t, err, "listing catways")
	assert.Empty(t, catways, "catways")
	rs, err := reservationsrp.New().Conn(v.c).List(ctx)
	require.NoError(t, err, "listing reservations")
	assert.Empty(t, rs, "reservations")

	rows, err := v.c.Query(ctx, "SELECT count(*), current_schema() FROM users")
	require.NoError(t, err, "counting users")
	defer rows.Close()
	require.True(t, rows.Next(), "count(*) gives one row")
	vals, err := rows.Values()
	require.NoError(t, err, "reading users count")
	assert.Equal(t, []any{int64(0), "catweb1"}, vals, "users in catweb1")
}
