// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memrepo

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/repo"
)

// Reservations implements the repo.Reservations interface.
type Reservations struct{}

// NewReservations instantiates an in-memory reservations repository.
func NewReservations() repo.Reservations {
	return Reservations{}
}

func (Reservations) Conn(c repo.Conn) repo.ReservationsConnQueryer {
	return reservationsQueryer{connQueryer(c)}
}

func (Reservations) Tx(tx repo.Tx) repo.ReservationsTxQueryer {
	return reservationsQueryer{txQueryer(tx)}
}

type reservationsQueryer struct {
	queryer
}

func (q reservationsQueryer) Get(
	_ context.Context, id uuid.UUID,
) (r *model.Reservation, err error) {
	err = q.do(func(t *tables) error {
		rr, ok := t.reservations[id]
		if !ok {
			return cerr.NotFound(fmt.Errorf(
				"%w: id=%s", model.ErrReservationNotFound, id,
			))
		}
		r = &rr
		return nil
	})
	return
}

func (q reservationsQueryer) List(
	context.Context,
) (list []*model.Reservation, err error) {
	err = q.do(func(t *tables) error {
		list = filter(t, func(*model.Reservation) bool { return true })
		return nil
	})
	return
}

func (q reservationsQueryer) ListByCatway(
	_ context.Context, catwayNumber int,
) (list []*model.Reservation, err error) {
	err = q.do(func(t *tables) error {
		list = filter(t, func(r *model.Reservation) bool {
			return r.CatwayNumber == catwayNumber
		})
		return nil
	})
	return
}

func (q reservationsQueryer) CountByCatway(
	ctx context.Context, catwayNumber int,
) (int64, error) {
	list, err := q.ListByCatway(ctx, catwayNumber)
	return int64(len(list)), err
}

func (q reservationsQueryer) Delete(_ context.Context, id uuid.UUID) error {
	return q.do(func(t *tables) error {
		if _, ok := t.reservations[id]; !ok {
			return cerr.NotFound(fmt.Errorf(
				"%w: id=%s", model.ErrReservationNotFound, id,
			))
		}
		delete(t.reservations, id)
		return nil
	})
}

func (q reservationsQueryer) Create(
	_ context.Context, r *model.Reservation,
) (created *model.Reservation, err error) {
	err = q.do(func(t *tables) error {
		rr := *r
		if rr.ID == uuid.Nil {
			rr.ID = uuid.New()
		}
		if err := checkRow(t, &rr, !q.s.noExclusion); err != nil {
			return err
		}
		t.reservations[rr.ID] = rr
		created = &rr
		return nil
	})
	return
}

func (q reservationsQueryer) Update(
	_ context.Context, r *model.Reservation,
) (updated *model.Reservation, err error) {
	err = q.do(func(t *tables) error {
		if _, ok := t.reservations[r.ID]; !ok {
			return cerr.NotFound(fmt.Errorf(
				"%w: id=%s", model.ErrReservationNotFound, r.ID,
			))
		}
		rr := *r
		if err := checkRow(t, &rr, !q.s.noExclusion); err != nil {
			return err
		}
		t.reservations[rr.ID] = rr
		updated = &rr
		return nil
	})
	return
}

func (q reservationsQueryer) DeleteAll(
	context.Context,
) (n int64, err error) {
	err = q.do(func(t *tables) error {
		n = int64(len(t.reservations))
		t.reservations = make(map[uuid.UUID]model.Reservation)
		return nil
	})
	return
}

// checkRow enforces the foreign key constraint of the reservations
// table for the r row, and its exclusion constraint if exclusion is
// true.
func checkRow(t *tables, r *model.Reservation, exclusion bool) error {
	if findCatway(t, r.CatwayNumber) == nil {
		return cerr.NotFound(fmt.Errorf(
			"%w: number=%d", model.ErrCatwayNotFound, r.CatwayNumber,
		))
	}
	if !exclusion {
		return nil
	}
	for id, o := range t.reservations {
		if id == r.ID || o.CatwayNumber != r.CatwayNumber {
			continue
		}
		if r.Range().Overlaps(o.Range()) {
			return cerr.Conflict(fmt.Errorf(
				"%w: catway=%d", model.ErrOverlap, r.CatwayNumber,
			))
		}
	}
	return nil
}

func filter(
	t *tables, keep func(r *model.Reservation) bool,
) []*model.Reservation {
	list := make([]*model.Reservation, 0)
	for _, r := range t.reservations {
		r := r
		if keep(&r) {
			list = append(list, &r)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.CatwayNumber != b.CatwayNumber {
			return a.CatwayNumber < b.CatwayNumber
		}
		return a.StartDate.Before(b.StartDate)
	})
	return list
}
