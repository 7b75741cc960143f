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

// Users implements the repo.Users interface.
type Users struct{}

// NewUsers instantiates an in-memory users repository.
func NewUsers() repo.Users {
	return Users{}
}

func (Users) Conn(c repo.Conn) repo.UsersConnQueryer {
	return usersQueryer{connQueryer(c)}
}

func (Users) Tx(tx repo.Tx) repo.UsersTxQueryer {
	return usersQueryer{txQueryer(tx)}
}

type usersQueryer struct {
	queryer
}

func (q usersQueryer) Create(
	_ context.Context, u *model.User,
) (created *model.User, err error) {
	err = q.do(func(t *tables) error {
		if findUser(t, u.Email) != nil {
			return cerr.Conflict(model.ErrDuplicateEmail)
		}
		uu := *u
		if uu.ID == uuid.Nil {
			uu.ID = uuid.New()
		}
		t.users[uu.ID] = uu
		created = &uu
		return nil
	})
	return
}

func (q usersQueryer) Get(
	_ context.Context, id uuid.UUID,
) (u *model.User, err error) {
	err = q.do(func(t *tables) error {
		uu, ok := t.users[id]
		if !ok {
			return cerr.NotFound(fmt.Errorf(
				"%w: id=%s", model.ErrUserNotFound, id,
			))
		}
		u = &uu
		return nil
	})
	return
}

func (q usersQueryer) GetByEmail(
	_ context.Context, email string,
) (u *model.User, err error) {
	err = q.do(func(t *tables) error {
		if u = findUser(t, email); u == nil {
			return cerr.NotFound(model.ErrUserNotFound)
		}
		return nil
	})
	return
}

func (q usersQueryer) List(context.Context) (list []*model.User, err error) {
	err = q.do(func(t *tables) error {
		list = make([]*model.User, 0, len(t.users))
		for _, u := range t.users {
			u := u
			list = append(list, &u)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		return list[i].Username < list[j].Username
	})
	return
}

func (q usersQueryer) Update(
	_ context.Context, u *model.User,
) (updated *model.User, err error) {
	err = q.do(func(t *tables) error {
		if _, ok := t.users[u.ID]; !ok {
			return cerr.NotFound(fmt.Errorf(
				"%w: id=%s", model.ErrUserNotFound, u.ID,
			))
		}
		if o := findUser(t, u.Email); o != nil && o.ID != u.ID {
			return cerr.Conflict(model.ErrDuplicateEmail)
		}
		uu := *u
		t.users[uu.ID] = uu
		updated = &uu
		return nil
	})
	return
}

func (q usersQueryer) Delete(_ context.Context, id uuid.UUID) error {
	return q.do(func(t *tables) error {
		if _, ok := t.users[id]; !ok {
			return cerr.NotFound(fmt.Errorf(
				"%w: id=%s", model.ErrUserNotFound, id,
			))
		}
		delete(t.users, id)
		return nil
	})
}

func findUser(t *tables, email string) *model.User {
	for _, u := range t.users {
		if u.Email == email {
			return &u
		}
	}
	return nil
}
