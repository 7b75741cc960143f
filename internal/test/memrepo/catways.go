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

// Catways implements the repo.Catways interface.
type Catways struct{}

// NewCatways instantiates an in-memory catways repository.
func NewCatways() repo.Catways {
	return Catways{}
}

func (Catways) Conn(c repo.Conn) repo.CatwaysConnQueryer {
	return catwaysQueryer{connQueryer(c)}
}

func (Catways) Tx(tx repo.Tx) repo.CatwaysTxQueryer {
	return catwaysQueryer{txQueryer(tx)}
}

type catwaysQueryer struct {
	queryer
}

func (q catwaysQueryer) Create(
	_ context.Context, c *model.Catway,
) (created *model.Catway, err error) {
	err = q.do(func(t *tables) error {
		if findCatway(t, c.Number) != nil {
			return cerr.Conflict(fmt.Errorf(
				"%w: number=%d", model.ErrDuplicateNumber, c.Number,
			))
		}
		cc := *c
		if cc.ID == uuid.Nil {
			cc.ID = uuid.New()
		}
		t.catways[cc.ID] = cc
		created = &cc
		return nil
	})
	return
}

func (q catwaysQueryer) Get(
	_ context.Context, id uuid.UUID,
) (c *model.Catway, err error) {
	err = q.do(func(t *tables) error {
		cc, ok := t.catways[id]
		if !ok {
			return cerr.NotFound(fmt.Errorf(
				"%w: id=%s", model.ErrCatwayNotFound, id,
			))
		}
		c = &cc
		return nil
	})
	return
}

func (q catwaysQueryer) GetByNumber(
	_ context.Context, number int,
) (c *model.Catway, err error) {
	err = q.do(func(t *tables) error {
		if c = findCatway(t, number); c == nil {
			return cerr.NotFound(fmt.Errorf(
				"%w: number=%d", model.ErrCatwayNotFound, number,
			))
		}
		return nil
	})
	return
}

func (q catwaysQueryer) List(
	context.Context,
) (list []*model.Catway, err error) {
	err = q.do(func(t *tables) error {
		list = make([]*model.Catway, 0, len(t.catways))
		for _, c := range t.catways {
			c := c
			list = append(list, &c)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		return list[i].Number < list[j].Number
	})
	return
}

// Update replaces the c.ID catway and renumbers its reservations,
// similar to an ON UPDATE CASCADE foreign key.
func (q catwaysQueryer) Update(
	_ context.Context, c *model.Catway,
) (updated *model.Catway, err error) {
	err = q.do(func(t *tables) error {
		cur, ok := t.catways[c.ID]
		if !ok {
			return cerr.NotFound(fmt.Errorf(
				"%w: id=%s", model.ErrCatwayNotFound, c.ID,
			))
		}
		if o := findCatway(t, c.Number); o != nil && o.ID != c.ID {
			return cerr.Conflict(fmt.Errorf(
				"%w: number=%d", model.ErrDuplicateNumber, c.Number,
			))
		}
		for id, r := range t.reservations {
			if r.CatwayNumber == cur.Number {
				r.CatwayNumber = c.Number
				t.reservations[id] = r
			}
		}
		cc := *c
		t.catways[cc.ID] = cc
		updated = &cc
		return nil
	})
	return
}

func (q catwaysQueryer) Delete(_ context.Context, id uuid.UUID) error {
	return q.do(func(t *tables) error {
		c, ok := t.catways[id]
		if !ok {
			return cerr.NotFound(fmt.Errorf(
				"%w: id=%s", model.ErrCatwayNotFound, id,
			))
		}
		for _, r := range t.reservations {
			if r.CatwayNumber == c.Number {
				return cerr.Conflict(fmt.Errorf(
					"%w: number=%d", model.ErrCatwayInUse, c.Number,
				))
			}
		}
		delete(t.catways, id)
		return nil
	})
}

func (q catwaysQueryer) DeleteAll(context.Context) (n int64, err error) {
	err = q.do(func(t *tables) error {
		if len(t.reservations) > 0 {
			return cerr.Conflict(model.ErrCatwayInUse)
		}
		n = int64(len(t.catways))
		t.catways = make(map[uuid.UUID]model.Catway)
		return nil
	})
	return
}

func findCatway(t *tables, number int) *model.Catway {
	for _, c := range t.catways {
		if c.Number == number {
			return &c
		}
	}
	return nil
}
