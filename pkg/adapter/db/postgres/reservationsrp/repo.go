// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package reservationsrp provides a reification of the
// repo.Reservations interface on top of the reservations table.
// The table has an exclusion constraint which rejects overlapping
// closed date ranges of the same catway, so the use case level overlap
// check is backed by the store too.
package reservationsrp

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

func (reservations *Repo) Conn(c repo.Conn) repo.ReservationsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Get(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	return Get(ctx, cq.Conn, id)
}

func (cq connQueryer) List(ctx context.Context) ([]*model.Reservation, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) ListByCatway(ctx context.Context, catwayNumber int) ([]*model.Reservation, error) {
	return ListByCatway(ctx, cq.Conn, catwayNumber)
}

func (cq connQueryer) CountByCatway(ctx context.Context, catwayNumber int) (int64, error) {
	return CountByCatway(ctx, cq.Conn, catwayNumber)
}

func (cq connQueryer) Delete(ctx context.Context, id uuid.UUID) error {
	return Delete(ctx, cq.Conn, id)
}

type txQueryer struct {
	*postgres.Tx
}

func (reservations *Repo) Tx(tx repo.Tx) repo.ReservationsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Get(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) List(ctx context.Context) ([]*model.Reservation, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) ListByCatway(ctx context.Context, catwayNumber int) ([]*model.Reservation, error) {
	return ListByCatway(ctx, tq.Tx, catwayNumber)
}

func (tq txQueryer) CountByCatway(ctx context.Context, catwayNumber int) (int64, error) {
	return CountByCatway(ctx, tq.Tx, catwayNumber)
}

func (tq txQueryer) Delete(ctx context.Context, id uuid.UUID) error {
	return Delete(ctx, tq.Tx, id)
}

func (tq txQueryer) Create(ctx context.Context, r *model.Reservation) (*model.Reservation, error) {
	return Create(ctx, tq.Tx, r)
}

func (tq txQueryer) Update(ctx context.Context, r *model.Reservation) (*model.Reservation, error) {
	return Update(ctx, tq.Tx, r)
}

func (tq txQueryer) DeleteAll(ctx context.Context) (int64, error) {
	return DeleteAll(ctx, tq.Tx)
}
