// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/core/model"
)

// Catways is the catways repository. It unwraps a Conn or Tx which was
// created by the same adapter and returns a queryer which runs the
// catway queries on it.
type Catways interface {
	Conn(Conn) CatwaysConnQueryer
	Tx(Tx) CatwaysTxQueryer
}

type CatwaysConnQueryer interface {
	CatwaysQueryer
}

type CatwaysTxQueryer interface {
	CatwaysQueryer

	// DeleteAll removes all catways. Reservations must be removed
	// beforehand in the same transaction.
	DeleteAll(ctx context.Context) (int64, error)
}

// CatwaysQueryer lists the catway queries.
// Missing catways are reported as cerr.NotFound errors which wrap the
// model.ErrCatwayNotFound and a unique number violation is reported
// as a cerr.Conflict error which wraps the model.ErrDuplicateNumber.
type CatwaysQueryer interface {
	// Create inserts c and returns the stored catway. A zero c.ID is
	// replaced by a fresh random identifier.
	Create(ctx context.Context, c *model.Catway) (*model.Catway, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Catway, error)
	GetByNumber(ctx context.Context, number int) (*model.Catway, error)

	// List returns all catways, ordered by their numbers.
	List(ctx context.Context) ([]*model.Catway, error)

	// Update replaces all fields of the catway with the c.ID id.
	Update(ctx context.Context, c *model.Catway) (*model.Catway, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
