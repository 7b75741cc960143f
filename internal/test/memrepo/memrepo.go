// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memrepo is an internal helper for the test packages.
// It provides an in-memory repo.Pool and the catways, reservations,
// and users repositories, so use cases and REST resources may be
// tested without a PostgreSQL container.
//
// All transactions of a Store are serialized by one mutex and a
// transaction which returns an error is rolled back by restoring a
// snapshot of the Store. Similar to the database constraints, the
// repositories reject duplicate catway numbers, duplicate emails,
// overlapping reservations, reservations of unknown catways, and
// deletion of catways which still have reservations. The overlap
// check may be disabled by the WithoutExclusion option, so use cases
// which are expected to detect overlaps by themselves can be tested.
// Raw SQL statements are not supported.
package memrepo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/repo"
)

// ErrUnsupported is returned by the Exec and Query methods.
var ErrUnsupported = errors.New("raw SQL is not supported in memory")

type tables struct {
	catways      map[uuid.UUID]model.Catway
	reservations map[uuid.UUID]model.Reservation
	users        map[uuid.UUID]model.User
}

func (t tables) clone() tables {
	c := tables{
		catways:      make(map[uuid.UUID]model.Catway, len(t.catways)),
		reservations: make(map[uuid.UUID]model.Reservation, len(t.reservations)),
		users:        make(map[uuid.UUID]model.User, len(t.users)),
	}
	for k, v := range t.catways {
		c.catways[k] = v
	}
	for k, v := range t.reservations {
		c.reservations[k] = v
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	return c
}

// Store keeps the rows of all tables. Its zero value is not usable
// and New should be used instead.
type Store struct {
	mu sync.Mutex
	t  tables

	commitErr   error // returned by the next serializable commit
	closed      bool
	noExclusion bool
}

// Option configures a Store while it is created by New.
type Option func(s *Store)

// WithoutExclusion disables the overlap check of reservations.
// Other constraints are enforced as usual.
func WithoutExclusion() Option {
	return func(s *Store) {
		s.noExclusion = true
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{t: tables{}.clone()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FailNextSerializableCommit makes the next transaction which uses
// the repo.Serializable isolation level to be rolled back at its
// commit time with an error wrapping err. It may be used in order to
// simulate a serialization failure.
func (s *Store) FailNextSerializableCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitErr = err
}

// Pool returns a repo.Pool which serves connections to s.
func (s *Store) Pool() *Pool {
	return &Pool{s: s}
}

// Pool implements the repo.Pool interface for a Store.
type Pool struct {
	s *Store
}

// Conn calls handler with a new connection to the Store.
func (p *Pool) Conn(ctx context.Context, handler repo.ConnHandler) error {
	p.s.mu.Lock()
	closed := p.s.closed
	p.s.mu.Unlock()
	if closed {
		return errors.New("pool is closed")
	}
	return handler(ctx, &Conn{s: p.s})
}

// Close marks the pool as closed. The Store contents are kept.
func (p *Pool) Close() error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	p.s.closed = true
	return nil
}

// Conn implements the repo.Conn interface. Each query which is run
// on a Conn (and not on a Tx) locks the Store individually.
type Conn struct {
	s *Store
}

func (c *Conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrUnsupported
}

func (c *Conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrUnsupported
}

// Tx runs handler in a transaction. The Store is locked until the
// handler returns and its changes are discarded if it fails.
func (c *Conn) Tx(ctx context.Context, handler repo.TxHandler) error {
	return c.TxWithIsolation(ctx, repo.DefaultIsolation, handler)
}

// TxWithIsolation is like Tx. All transactions are serialized, so
// the level only affects the FailNextSerializableCommit behavior.
func (c *Conn) TxWithIsolation(
	ctx context.Context, level repo.IsolationLevel, handler repo.TxHandler,
) (err error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	snapshot := c.s.t.clone()
	defer func() {
		if err != nil {
			c.s.t = snapshot
		}
	}()
	if err = handler(ctx, &Tx{s: c.s}); err != nil {
		return err
	}
	if level == repo.Serializable && c.s.commitErr != nil {
		err = cerr.Conflict(fmt.Errorf(
			"%w: %w", model.ErrConcurrentUpdate, c.s.commitErr,
		))
		c.s.commitErr = nil
		return err
	}
	return ctx.Err()
}

func (c *Conn) IsConn() {
}

// Tx implements the repo.Tx interface. Its queries run while the
// Store is locked by the enclosing TxWithIsolation call.
type Tx struct {
	s *Store
}

func (tx *Tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrUnsupported
}

func (tx *Tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrUnsupported
}

func (tx *Tx) IsTx() {
}

// queryer runs its functions on the Store tables, locking the Store
// only if it is not locked by a transaction already.
type queryer struct {
	s      *Store
	locked bool
}

func (q queryer) do(f func(t *tables) error) error {
	if !q.locked {
		q.s.mu.Lock()
		defer q.s.mu.Unlock()
	}
	return f(&q.s.t)
}

func connQueryer(c repo.Conn) queryer {
	return queryer{s: c.(*Conn).s}
}

func txQueryer(tx repo.Tx) queryer {
	return queryer{s: tx.(*Tx).s, locked: true}
}
