// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package catwaysuc contains the catways UseCase which implements the
// catways registry. The registry keeps catway numbers unique and
// supports the following use cases:
//  1. Creating a catway,
//  2. Updating (and possibly renumbering) a catway,
//  3. Deleting a catway which has no reservations,
//  4. Getting or listing catways.
package catwaysuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/log"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/repo"
)

// UseCase represents the catways use case. It holds a database
// connection pool and the catways and reservations repositories (to be
// guided with the DB pool). Reservations are only counted, so a catway
// which is still referenced may not be deleted.
type UseCase struct {
	pool           repo.Pool
	catwaysrp      repo.Catways
	reservationsrp repo.Reservations
}

// New instantiates a catways use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
func New(
	p repo.Pool, c repo.Catways, r repo.Reservations,
) (*UseCase, error) {
	if p == nil || c == nil || r == nil {
		return nil, fmt.Errorf("pool and repositories are required")
	}
	return &UseCase{pool: p, catwaysrp: c, reservationsrp: r}, nil
}

// Create use case validates and registers a new catway. The number
// uniqueness check and the insertion run in one serializable
// transaction, so two concurrent creations of the same number may not
// both succeed. A used number is reported as a cerr.Conflict error
// wrapping the model.ErrDuplicateNumber.
func (catways *UseCase) Create(
	ctx context.Context, number int, bt model.BerthType, state string,
) (catway *model.Catway, err error) {
	c := &model.Catway{Number: number, Type: bt, State: state}
	if err = c.Validate(); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = catways.pool.Conn(ctx, func(ctx context.Context, cn repo.Conn) error {
		return cn.TxWithIsolation(
			ctx, repo.Serializable,
			func(ctx context.Context, tx repo.Tx) error {
				q := catways.catwaysrp.Tx(tx)
				if err := ensureFree(ctx, q, number, uuid.Nil); err != nil {
					return err
				}
				catway, err = q.Create(ctx, c)
				return err
			},
		)
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "catway is created",
		log.Stringer("id", catway.ID), slog.Int("number", catway.Number),
	)
	return catway, nil
}

// Update use case changes the supplied fields of the id catway.
// If the catway number is changed, it must not be used by another
// catway. Reservations follow the renumbered catway.
func (catways *UseCase) Update(
	ctx context.Context, id uuid.UUID, u model.CatwayUpdate,
) (catway *model.Catway, err error) {
	prevNumber := 0
	err = catways.pool.Conn(ctx, func(ctx context.Context, cn repo.Conn) error {
		return cn.TxWithIsolation(
			ctx, repo.Serializable,
			func(ctx context.Context, tx repo.Tx) error {
				q := catways.catwaysrp.Tx(tx)
				cur, err := q.Get(ctx, id)
				if err != nil {
					return err
				}
				prevNumber = cur.Number
				merged := u.Apply(*cur)
				if err := merged.Validate(); err != nil {
					return cerr.BadRequest(err)
				}
				if merged.Number != cur.Number {
					err := ensureFree(ctx, q, merged.Number, id)
					if err != nil {
						return err
					}
				}
				catway, err = q.Update(ctx, &merged)
				return err
			},
		)
	})
	if err != nil {
		return nil, err
	}
	log.Info(
		ctx, "catway is updated",
		log.Stringer("id", catway.ID),
		slog.Int("number", catway.Number),
		slog.Int("previous-number", prevNumber),
		log.Stringer("type", catway.Type),
	)
	return catway, nil
}

// Delete use case removes the id catway. A catway which still has
// reservations may not be deleted and a cerr.Conflict error wrapping
// the model.ErrCatwayInUse will be returned instead.
func (catways *UseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return catways.pool.Conn(ctx, func(ctx context.Context, cn repo.Conn) error {
		return cn.TxWithIsolation(
			ctx, repo.Serializable,
			func(ctx context.Context, tx repo.Tx) error {
				q := catways.catwaysrp.Tx(tx)
				cur, err := q.Get(ctx, id)
				if err != nil {
					return err
				}
				n, err := catways.reservationsrp.Tx(tx).CountByCatway(
					ctx, cur.Number,
				)
				if err != nil {
					return fmt.Errorf("counting reservations: %w", err)
				}
				if n > 0 {
					return cerr.Conflict(fmt.Errorf(
						"%w: catway %d has %d reservation(s)",
						model.ErrCatwayInUse, cur.Number, n,
					))
				}
				if err := q.Delete(ctx, id); err != nil {
					return err
				}
				log.Info(
					ctx, "catway is deleted",
					log.Stringer("id", id), slog.Int("number", cur.Number),
				)
				return nil
			},
		)
	})
}

// Get use case returns the id catway.
func (catways *UseCase) Get(
	ctx context.Context, id uuid.UUID,
) (catway *model.Catway, err error) {
	err = catways.pool.Conn(ctx, func(ctx context.Context, cn repo.Conn) error {
		catway, err = catways.catwaysrp.Conn(cn).Get(ctx, id)
		return err
	})
	if err != nil {
		catway = nil
	}
	return
}

// GetByNumber use case returns the catway which has the given number.
func (catways *UseCase) GetByNumber(
	ctx context.Context, number int,
) (catway *model.Catway, err error) {
	err = catways.pool.Conn(ctx, func(ctx context.Context, cn repo.Conn) error {
		catway, err = catways.catwaysrp.Conn(cn).GetByNumber(ctx, number)
		return err
	})
	if err != nil {
		catway = nil
	}
	return
}

// List use case returns all catways, ordered by their numbers.
func (catways *UseCase) List(
	ctx context.Context,
) (list []*model.Catway, err error) {
	err = catways.pool.Conn(ctx, func(ctx context.Context, cn repo.Conn) error {
		list, err = catways.catwaysrp.Conn(cn).List(ctx)
		return err
	})
	if err != nil {
		list = nil
	}
	return
}

// ensureFree returns a cerr.Conflict error if number is used by
// a catway other than the self catway. The uuid.Nil self matches
// no catway.
func ensureFree(
	ctx context.Context, q repo.CatwaysQueryer, number int, self uuid.UUID,
) error {
	c, err := q.GetByNumber(ctx, number)
	switch {
	case err == nil && c.ID != self:
		return cerr.Conflict(fmt.Errorf(
			"%w: number=%d", model.ErrDuplicateNumber, number,
		))
	case err == nil, cerr.Is(err, cerr.KindNotFound):
		return nil
	default:
		return fmt.Errorf("looking up number %d: %w", number, err)
	}
}
