// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrp provides a reification of the repo.Users interface
// on top of the users table.
package usersrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/adapter/db/postgres"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type queryer[Q postgres.Queryer] struct {
	q Q
}

func (users *Repo) Conn(c repo.Conn) repo.UsersConnQueryer {
	return queryer[*postgres.Conn]{q: c.(*postgres.Conn)}
}

func (users *Repo) Tx(tx repo.Tx) repo.UsersTxQueryer {
	return queryer[*postgres.Tx]{q: tx.(*postgres.Tx)}
}

func (uq queryer[Q]) Create(ctx context.Context, u *model.User) (*model.User, error) {
	return Create(ctx, uq.q, u)
}

func (uq queryer[Q]) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return Get(ctx, uq.q, id)
}

func (uq queryer[Q]) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return GetByEmail(ctx, uq.q, email)
}

func (uq queryer[Q]) List(ctx context.Context) ([]*model.User, error) {
	return List(ctx, uq.q)
}

func (uq queryer[Q]) Update(ctx context.Context, u *model.User) (*model.User, error) {
	return Update(ctx, uq.q, u)
}

func (uq queryer[Q]) Delete(ctx context.Context, id uuid.UUID) error {
	return Delete(ctx, uq.q, id)
}
