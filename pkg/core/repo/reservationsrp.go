// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/core/model"
)

// Reservations is the reservations repository. It unwraps a Conn or Tx
// which was created by the same adapter and returns a queryer which
// runs the reservation queries on it.
type Reservations interface {
	Conn(Conn) ReservationsConnQueryer
	Tx(Tx) ReservationsTxQueryer
}

type ReservationsConnQueryer interface {
	ReservationsQueryer
}

// ReservationsTxQueryer lists queries which must run in a transaction
// in addition to the common ones. Writes are kept here, because each
// write must follow an overlap check in the same transaction.
type ReservationsTxQueryer interface {
	ReservationsQueryer

	// Create inserts r and returns the stored reservation. A zero
	// r.ID is replaced by a fresh random identifier. An overlap which
	// is detected by the store itself is reported as a cerr.Conflict
	// error which wraps the model.ErrOverlap.
	Create(
		ctx context.Context, r *model.Reservation,
	) (*model.Reservation, error)

	// Update replaces all fields of the reservation with the r.ID id.
	Update(
		ctx context.Context, r *model.Reservation,
	) (*model.Reservation, error)

	// DeleteAll removes all reservations.
	DeleteAll(ctx context.Context) (int64, error)
}

// ReservationsQueryer lists the reservation queries which may run with
// a connection or in a transaction. Missing reservations are reported
// as cerr.NotFound errors which wrap the model.ErrReservationNotFound.
type ReservationsQueryer interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Reservation, error)

	// List returns all reservations, ordered by catway number and
	// start date.
	List(ctx context.Context) ([]*model.Reservation, error)

	// ListByCatway returns the reservations of one catway, ordered by
	// their start dates. It runs a fresh query on each call.
	ListByCatway(
		ctx context.Context, catwayNumber int,
	) ([]*model.Reservation, error)

	// CountByCatway returns the number of reservations of one catway.
	CountByCatway(ctx context.Context, catwayNumber int) (int64, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
