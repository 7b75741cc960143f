// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package catwaysrp provides a reification of the repo.Catways
// interface on top of the catways table.
package catwaysrp

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

type connQueryer struct {
	*postgres.Conn
}

func (catways *Repo) Conn(c repo.Conn) repo.CatwaysConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, c *model.Catway) (*model.Catway, error) {
	return Create(ctx, cq.Conn, c)
}

func (cq connQueryer) Get(ctx context.Context, id uuid.UUID) (*model.Catway, error) {
	return Get(ctx, cq.Conn, id)
}

func (cq connQueryer) GetByNumber(ctx context.Context, number int) (*model.Catway, error) {
	return GetByNumber(ctx, cq.Conn, number)
}

func (cq connQueryer) List(ctx context.Context) ([]*model.Catway, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) Update(ctx context.Context, c *model.Catway) (*model.Catway, error) {
	return Update(ctx, cq.Conn, c)
}

func (cq connQueryer) Delete(ctx context.Context, id uuid.UUID) error {
	return Delete(ctx, cq.Conn, id)
}

type txQueryer struct {
	*postgres.Tx
}

func (catways *Repo) Tx(tx repo.Tx) repo.CatwaysTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, c *model.Catway) (*model.Catway, error) {
	return Create(ctx, tq.Tx, c)
}

func (tq txQueryer) Get(ctx context.Context, id uuid.UUID) (*model.Catway, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) GetByNumber(ctx context.Context, number int) (*model.Catway, error) {
	return GetByNumber(ctx, tq.Tx, number)
}

func (tq txQueryer) List(ctx context.Context) ([]*model.Catway, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) Update(ctx context.Context, c *model.Catway) (*model.Catway, error) {
	return Update(ctx, tq.Tx, c)
}

func (tq txQueryer) Delete(ctx context.Context, id uuid.UUID) error {
	return Delete(ctx, tq.Tx, id)
}

func (tq txQueryer) DeleteAll(ctx context.Context) (int64, error) {
	return DeleteAll(ctx, tq.Tx)
}
