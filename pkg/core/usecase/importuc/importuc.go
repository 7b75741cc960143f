// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package importuc contains the data import UseCase which replaces all
// catways and reservations with a given set of records, e.g., as read
// from JSON files by the "catweb db import" command.
package importuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/log"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/repo"
	"github.com/momeni/catways/pkg/core/usecase/reservationsuc"
)

// UseCase represents the data import use case.
type UseCase struct {
	pool           repo.Pool
	catwaysrp      repo.Catways
	reservationsrp repo.Reservations
	reservations   *reservationsuc.UseCase
}

// Summary reports the number of removed and imported records.
type Summary struct {
	DeletedCatways       int64
	DeletedReservations  int64
	ImportedCatways      int
	ImportedReservations int
}

// New instantiates a data import use case. The rs reservations use
// case is used for validation of imported reservations, so an import
// may not persist overlapping reservations either.
func New(
	p repo.Pool,
	c repo.Catways,
	r repo.Reservations,
	rs *reservationsuc.UseCase,
) (*UseCase, error) {
	if p == nil || c == nil || r == nil || rs == nil {
		return nil, errors.New("pool, repositories, and use case are required")
	}
	return &UseCase{
		pool: p, catwaysrp: c, reservationsrp: r, reservations: rs,
	}, nil
}

// Import removes all reservations and catways and inserts the given
// ones in a single serializable transaction. The IDs of the given
// records are kept if they are not zero. If any record is invalid,
// duplicated, or overlapping, nothing is changed and the returned
// error reports the index of the first offending record.
func (im *UseCase) Import(
	ctx context.Context,
	catways []model.Catway,
	reservations []model.Reservation,
) (*Summary, error) {
	s := &Summary{}
	err := im.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.TxWithIsolation(
			ctx, repo.Serializable,
			func(ctx context.Context, tx repo.Tx) (err error) {
				*s = Summary{}
				rq := im.reservationsrp.Tx(tx)
				if s.DeletedReservations, err = rq.DeleteAll(ctx); err != nil {
					return fmt.Errorf("deleting reservations: %w", err)
				}
				cq := im.catwaysrp.Tx(tx)
				if s.DeletedCatways, err = cq.DeleteAll(ctx); err != nil {
					return fmt.Errorf("deleting catways: %w", err)
				}
				numbers := make(map[int]bool, len(catways))
				for i := range catways {
					cw := &catways[i]
					if err := cw.Validate(); err != nil {
						return fmt.Errorf("catway #%d: %w", i, cerr.BadRequest(err))
					}
					if numbers[cw.Number] {
						return fmt.Errorf("catway #%d: %w", i, cerr.Conflict(
							fmt.Errorf("%w: number=%d", model.ErrDuplicateNumber, cw.Number),
						))
					}
					numbers[cw.Number] = true
					if _, err := cq.Create(ctx, cw); err != nil {
						return fmt.Errorf("catway #%d: %w", i, err)
					}
					s.ImportedCatways++
				}
				for i := range reservations {
					r := &reservations[i]
					if !numbers[r.CatwayNumber] {
						return fmt.Errorf("reservation #%d: %w", i, cerr.NotFound(
							fmt.Errorf("%w: number=%d", model.ErrCatwayNotFound, r.CatwayNumber),
						))
					}
					if _, err := im.reservations.CheckAndInsert(ctx, tx, r); err != nil {
						return fmt.Errorf("reservation #%d: %w", i, err)
					}
					s.ImportedReservations++
				}
				return nil
			},
		)
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "data is imported",
		slog.Int("catways", s.ImportedCatways),
		slog.Int("reservations", s.ImportedReservations),
		slog.Int64("deletedCatways", s.DeletedCatways),
		slog.Int64("deletedReservations", s.DeletedReservations),
	)
	return s, nil
}
