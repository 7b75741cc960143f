// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package reservationsuc contains the reservations UseCase which keeps
// the reservations of each catway pairwise disjoint. Create and update
// operations are gated on two checks, in this order:
//  1. The catway must exist, otherwise, a cerr.NotFound error is
//     returned,
//  2. The (effective) date range must not overlap any other reservation
//     of the same catway, otherwise, a cerr.Conflict error wrapping
//     model.ErrOverlap is returned.
//
// Both checks and the write run in one serializable transaction, and
// the store backs them with an exclusion constraint, so concurrent
// requests may not persist overlapping reservations. Failed checks
// roll the transaction back and leave no partial change behind.
package reservationsuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/log"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/repo"
)

// AnyCatway may be passed as the catway number of Get, Update, and
// Delete in order to skip the check which ensures that the reservation
// belongs to a specific catway. Catway numbers are positive.
const AnyCatway = 0

// UseCase represents the reservations use case. It holds a database
// connection pool, the catways and reservations repositories, and the
// reservations use case specific settings.
type UseCase struct {
	pool           repo.Pool
	catwaysrp      repo.Catways
	reservationsrp repo.Reservations

	maxLength time.Duration // zero means unlimited
}

// New instantiates a reservations use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool, c repo.Catways, r repo.Reservations, opts ...Option,
) (*UseCase, error) {
	if p == nil || c == nil || r == nil {
		return nil, errors.New("pool and repositories are required")
	}
	uc := &UseCase{pool: p, catwaysrp: c, reservationsrp: r}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return uc, nil
}

// Create use case reserves the catwayNumber catway for the closed
// [start, end] date range. It returns a cerr.NotFound error if the
// catway does not exist (regardless of the date range), a
// cerr.BadRequest error for missing names or an invalid range, and
// a cerr.Conflict error wrapping model.ErrOverlap if the range
// overlaps another reservation of the same catway.
func (rs *UseCase) Create(
	ctx context.Context,
	catwayNumber int,
	clientName, boatName string,
	start, end time.Time,
) (*model.Reservation, error) {
	r := &model.Reservation{
		CatwayNumber: catwayNumber,
		ClientName:   clientName,
		BoatName:     boatName,
		StartDate:    start,
		EndDate:      end,
	}
	var created *model.Reservation
	err := rs.serializable(ctx, func(ctx context.Context, tx repo.Tx) error {
		_, err := rs.catwaysrp.Tx(tx).GetByNumber(ctx, catwayNumber)
		if err != nil {
			return err
		}
		if err := rs.validate(r); err != nil {
			return err
		}
		q := rs.reservationsrp.Tx(tx)
		if err := checkOverlap(ctx, q, r, uuid.Nil); err != nil {
			return err
		}
		created, err = q.Create(ctx, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "reservation is created",
		log.Stringer("id", created.ID),
		slog.Int("catway", created.CatwayNumber),
		log.Range("range", created.StartDate, created.EndDate),
	)
	return created, nil
}

// Update use case changes the supplied fields of the id reservation.
// The omitted fields keep their stored values and the resulting
// (merged) record is validated again. The effective date range is
// always checked for overlaps, even if only one of the dates (or
// neither of them) was supplied, while the reservation itself is
// excluded from the conflict search. So updating a reservation to its
// own unchanged range never fails with a conflict.
// If catwayNumber is not AnyCatway, the reservation must belong to
// that catway, otherwise, a cerr.NotFound error is returned.
func (rs *UseCase) Update(
	ctx context.Context,
	catwayNumber int,
	id uuid.UUID,
	u model.ReservationUpdate,
) (*model.Reservation, error) {
	var updated *model.Reservation
	err := rs.serializable(ctx, func(ctx context.Context, tx repo.Tx) error {
		q := rs.reservationsrp.Tx(tx)
		cur, err := get(ctx, q, catwayNumber, id)
		if err != nil {
			return err
		}
		merged := u.Apply(*cur)
		if err := rs.validate(&merged); err != nil {
			return err
		}
		if err := checkOverlap(ctx, q, &merged, id); err != nil {
			return err
		}
		updated, err = q.Update(ctx, &merged)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "reservation is updated",
		log.Stringer("id", updated.ID),
		slog.Int("catway", updated.CatwayNumber),
		log.Range("range", updated.StartDate, updated.EndDate),
	)
	return updated, nil
}

// Delete use case removes the id reservation. No overlap check is
// required and other reservations are not affected.
func (rs *UseCase) Delete(
	ctx context.Context, catwayNumber int, id uuid.UUID,
) error {
	return rs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := rs.reservationsrp.Tx(tx)
			if _, err := get(ctx, q, catwayNumber, id); err != nil {
				return err
			}
			if err := q.Delete(ctx, id); err != nil {
				return err
			}
			log.Info(
				ctx, "reservation is deleted",
				log.Stringer("id", id), slog.Int("catway", catwayNumber),
			)
			return nil
		})
	})
}

// Get use case returns the id reservation, possibly ensuring that it
// belongs to the catwayNumber catway.
func (rs *UseCase) Get(
	ctx context.Context, catwayNumber int, id uuid.UUID,
) (r *model.Reservation, err error) {
	err = rs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		r, err = get(ctx, rs.reservationsrp.Conn(c), catwayNumber, id)
		return err
	})
	if err != nil {
		r = nil
	}
	return
}

// ListByCatway use case returns reservations of the catwayNumber
// catway, running a fresh query on each call. A missing catway is
// reported as a cerr.NotFound error.
func (rs *UseCase) ListByCatway(
	ctx context.Context, catwayNumber int,
) (list []*model.Reservation, err error) {
	err = rs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		_, err := rs.catwaysrp.Conn(c).GetByNumber(ctx, catwayNumber)
		if err != nil {
			return err
		}
		list, err = rs.reservationsrp.Conn(c).ListByCatway(ctx, catwayNumber)
		return err
	})
	if err != nil {
		list = nil
	}
	return
}

// List use case returns all reservations of all catways.
func (rs *UseCase) List(
	ctx context.Context,
) (list []*model.Reservation, err error) {
	err = rs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		list, err = rs.reservationsrp.Conn(c).List(ctx)
		return err
	})
	if err != nil {
		list = nil
	}
	return
}

// CheckAndInsert validates r and inserts it if it overlaps no other
// reservation of its catway, using the given tx transaction.
// The catway existence is not checked because callers (e.g., the data
// import use case) may create catways in the same transaction.
func (rs *UseCase) CheckAndInsert(
	ctx context.Context, tx repo.Tx, r *model.Reservation,
) (*model.Reservation, error) {
	if err := rs.validate(r); err != nil {
		return nil, err
	}
	q := rs.reservationsrp.Tx(tx)
	if err := checkOverlap(ctx, q, r, uuid.Nil); err != nil {
		return nil, err
	}
	return q.Create(ctx, r)
}

func (rs *UseCase) serializable(ctx context.Context, h repo.TxHandler) error {
	err := rs.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.TxWithIsolation(ctx, repo.Serializable, h)
	})
	if err != nil && errors.Is(err, model.ErrConcurrentUpdate) {
		log.Warn(ctx, "serializable reservation tx failed", log.Err("err", err))
		return cerr.Conflict(fmt.Errorf(
			"%w (%w)", model.ErrOverlap, model.ErrConcurrentUpdate,
		))
	}
	return err
}

// validate returns a cerr.BadRequest error if r has missing fields,
// its start date comes after its end date, or its range is longer
// than the configured maximum length.
func (rs *UseCase) validate(r *model.Reservation) error {
	if err := r.Validate(); err != nil {
		return cerr.BadRequest(err)
	}
	if l := r.Range().Length(); rs.maxLength > 0 && l > rs.maxLength {
		return cerr.BadRequest(fmt.Errorf(
			"%w: length %v exceeds %v", model.ErrInvalidRange,
			l, rs.maxLength,
		))
	}
	return nil
}

func get(
	ctx context.Context,
	q repo.ReservationsQueryer,
	catwayNumber int,
	id uuid.UUID,
) (*model.Reservation, error) {
	r, err := q.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if catwayNumber != AnyCatway && r.CatwayNumber != catwayNumber {
		return nil, cerr.NotFound(fmt.Errorf(
			"%w: id=%s, catway=%d", model.ErrReservationNotFound,
			id, catwayNumber,
		))
	}
	return r, nil
}

// checkOverlap queries all reservations of the r catway and returns
// a cerr.Conflict error if any of them, except the self reservation,
// overlaps with r.
func checkOverlap(
	ctx context.Context,
	q repo.ReservationsQueryer,
	r *model.Reservation,
	self uuid.UUID,
) error {
	others, err := q.ListByCatway(ctx, r.CatwayNumber)
	if err != nil {
		return fmt.Errorf("listing reservations: %w", err)
	}
	rr := r.Range()
	for _, o := range others {
		if o.ID == self {
			continue
		}
		if rr.Overlaps(o.Range()) {
			return cerr.Conflict(fmt.Errorf(
				"%w: catway %d is reserved from %s to %s",
				model.ErrOverlap, r.CatwayNumber,
				o.StartDate.Format(time.RFC3339),
				o.EndDate.Format(time.RFC3339),
			))
		}
	}
	return nil
}
