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

// Users is the user accounts repository.
type Users interface {
	Conn(Conn) UsersConnQueryer
	Tx(Tx) UsersTxQueryer
}

type UsersConnQueryer interface {
	UsersQueryer
}

type UsersTxQueryer interface {
	UsersQueryer
}

// UsersQueryer lists the user queries. Emails are compared without
// considering their letter case. Missing users are reported as
// cerr.NotFound errors which wrap the model.ErrUserNotFound and an
// email uniqueness violation is reported as a cerr.Conflict error
// which wraps the model.ErrDuplicateEmail.
type UsersQueryer interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List returns all users, ordered by their usernames.
	List(ctx context.Context) ([]*model.User, error)

	// Update replaces all fields of the user with the u.ID id.
	Update(ctx context.Context, u *model.User) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
