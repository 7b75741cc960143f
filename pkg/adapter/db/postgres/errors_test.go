// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/catways/pkg/adapter/db/postgres"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, postgres.MapError(nil))
	plain := errors.New("connection reset")
	assert.Equal(t, plain, postgres.MapError(plain))
	classified := cerr.NotFound(model.ErrCatwayNotFound)
	assert.Equal(t, classified, postgres.MapError(classified))

	for name, tc := range map[string]struct {
		pgErr  *pgconn.PgError
		kind   cerr.Kind
		target error
	}{
		"overlap": {
			&pgconn.PgError{
				Code:           postgres.CodeExclusionViolation,
				ConstraintName: postgres.ConstraintNoOverlap,
			},
			cerr.KindConflict, model.ErrOverlap,
		},
		"serialization": {
			&pgconn.PgError{Code: postgres.CodeSerializationFailure},
			cerr.KindConflict, model.ErrConcurrentUpdate,
		},
		"duplicate number": {
			&pgconn.PgError{
				Code:           postgres.CodeUniqueViolation,
				ConstraintName: postgres.ConstraintCatwayNumber,
			},
			cerr.KindConflict, model.ErrDuplicateNumber,
		},
		"duplicate email": {
			&pgconn.PgError{
				Code:           postgres.CodeUniqueViolation,
				ConstraintName: postgres.ConstraintUserEmail,
			},
			cerr.KindConflict, model.ErrDuplicateEmail,
		},
		"missing catway": {
			&pgconn.PgError{
				Code:      postgres.CodeForeignKeyViolation,
				TableName: postgres.TableReservations,
				Message: `insert or update on table "reservations" ` +
					`violates foreign key constraint ` +
					`"reservations_catway_number_fkey"`,
			},
			cerr.KindNotFound, model.ErrCatwayNotFound,
		},
		"catway in use": {
			&pgconn.PgError{
				Code:      postgres.CodeForeignKeyViolation,
				TableName: postgres.TableReservations,
				Message: `update or delete on table "catways" violates ` +
					`foreign key constraint ` +
					`"reservations_catway_number_fkey" on table ` +
					`"reservations"`,
			},
			cerr.KindConflict, model.ErrCatwayInUse,
		},
	} {
		err := postgres.MapError(fmt.Errorf("query: %w", tc.pgErr))
		assert.True(t, cerr.Is(err, tc.kind), "%s: %v", name, err)
		assert.ErrorIs(t, err, tc.target, name)
		var pgErr *pgconn.PgError
		assert.ErrorAs(t, err, &pgErr, "%s: original error is kept", name)
	}
}
