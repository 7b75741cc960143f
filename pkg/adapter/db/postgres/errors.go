// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/model"
)

// These SQLSTATE codes are classified by MapError.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	CodeForeignKeyViolation  = "23503"
	CodeUniqueViolation      = "23505"
	CodeExclusionViolation   = "23P01"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeCannotConnectNow     = "57P03"
)

// These constraint names are created by the stlmig1 package and are
// used for telling duplicate catway numbers and emails apart.
const (
	ConstraintCatwayNumber      = "catways_number_key"
	ConstraintUserEmail         = "users_email_key"
	ConstraintReservationCatway = "reservations_catway_number_fkey"
	ConstraintNoOverlap         = "reservations_no_overlap"
	TableReservations           = "reservations"
)

// The PostgreSQL server reports the referencing table name for both
// sides of a foreign key violation, so a restricted deletion (or
// update) of a referenced row is recognized by its message prefix.
const fkRestrictPrefix = "update or delete on table "

// MapError classifies the PostgreSQL errors which are caused by the
// store-level constraints as cerr.Error instances, so they are reported
// like the use case level checks. Errors which are already classified,
// and errors without a *pgconn.PgError in their chain, are returned
// unchanged. A nil err gives nil.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := asCErr(err); ok {
		return err
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case CodeExclusionViolation:
		return cerr.Conflict(fmt.Errorf(
			"%w (%s): %w", model.ErrOverlap, pgErr.ConstraintName, err,
		))
	case CodeSerializationFailure, CodeDeadlockDetected:
		return cerr.Conflict(fmt.Errorf(
			"%w: %w", model.ErrConcurrentUpdate, err,
		))
	case CodeUniqueViolation:
		switch pgErr.ConstraintName {
		case ConstraintCatwayNumber:
			return cerr.Conflict(fmt.Errorf(
				"%w: %w", model.ErrDuplicateNumber, err,
			))
		case ConstraintUserEmail:
			return cerr.Conflict(fmt.Errorf(
				"%w: %w", model.ErrDuplicateEmail, err,
			))
		default:
			return cerr.Conflict(err)
		}
	case CodeForeignKeyViolation:
		if strings.HasPrefix(pgErr.Message, fkRestrictPrefix) {
			return cerr.Conflict(fmt.Errorf(
				"%w: %w", model.ErrCatwayInUse, err,
			))
		}
		return cerr.NotFound(fmt.Errorf(
			"%w: %w", model.ErrCatwayNotFound, err,
		))
	default:
		return err
	}
}

func asCErr(err error) (*cerr.Error, bool) {
	var ce *cerr.Error
	ok := errors.As(err, &ce)
	return ce, ok
}
