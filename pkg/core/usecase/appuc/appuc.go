// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package appuc contains the application UseCase which creates all
// other use case objects through a Builder, allows the application to
// be reloaded with a fresh Builder (e.g., after the configuration file
// is changed), and provides the current use case objects (with atomic
// replacement support) so they may be used by the resources packages.
package appuc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/momeni/catways/pkg/core/log"
	"github.com/momeni/catways/pkg/core/repo"
	"github.com/momeni/catways/pkg/core/usecase/catwaysuc"
	"github.com/momeni/catways/pkg/core/usecase/importuc"
	"github.com/momeni/catways/pkg/core/usecase/reservationsuc"
	"github.com/momeni/catways/pkg/core/usecase/usersuc"
)

// Repos groups the repository instances which are required by the
// supported use cases.
type Repos struct {
	Catways      repo.Catways
	Reservations repo.Reservations
	Users        repo.Users
}

// UseCase represents an application use case. It holds a database
// connection pool and all repository instances which are required by
// other supported use cases. Therefore, it can pass them to a use case
// Builder object (which is realized by the effective Config instance)
// in order to create supported use case objects (during New or Reload).
type UseCase struct {
	pool  repo.Pool
	repos Repos

	// mutex is held by Reload, so only one goroutine may build new use
	// case objects at any time, while others keep using the published
	// objects (which are protected by the following rwlock).
	mutex sync.Mutex

	// rwlock is locked for writing by updateAll whenever new use case
	// objects are prepared and should be published atomically, while
	// it is locked by all getter methods for reading.
	rwlock sync.RWMutex

	managed managedUseCases
}

// managedUseCases contains all use case objects which are created by
// a Builder and replaced together.
type managedUseCases struct {
	catways      *catwaysuc.UseCase
	reservations *reservationsuc.UseCase
	users        *usersuc.UseCase
	imports      *importuc.UseCase
}

// New instantiates an application use case and creates all managed use
// case objects using the b Builder.
func New(p repo.Pool, repos Repos, b Builder) (*UseCase, error) {
	switch {
	case p == nil:
		return nil, errors.New("pool is required")
	case repos.Catways == nil || repos.Reservations == nil:
		return nil, errors.New("catways and reservations repos are required")
	case repos.Users == nil:
		return nil, errors.New("users repo is required")
	case b == nil:
		return nil, errors.New("builder is required")
	}
	app := &UseCase{pool: p, repos: repos}
	managed, err := app.newManagedUseCases(b)
	if err != nil {
		return nil, fmt.Errorf("creating use cases: %w", err)
	}
	app.managed = managed
	return app, nil
}

// Reload creates fresh use case objects using the b Builder and
// switches all of them atomically. If any of them cannot be created,
// an error is returned and the previous objects are kept intact.
//
// Reload calls are serialized using a mutex, while getters are only
// blocked for the short moment which is required for the switch.
func (app *UseCase) Reload(ctx context.Context, b Builder) error {
	if b == nil {
		return errors.New("builder is required")
	}
	app.mutex.Lock()
	defer app.mutex.Unlock()
	managed, err := app.newManagedUseCases(b)
	if err != nil {
		return fmt.Errorf("creating use cases: %w", err)
	}
	app.updateAll(managed)
	log.Info(ctx, "use cases are reloaded")
	return nil
}

// newManagedUseCases creates all relevant use case objects using the
// given Builder instance and wraps their pointers by a managedUseCases
// struct, so they may be passed to the updateAll method later.
func (app *UseCase) newManagedUseCases(
	b Builder,
) (managedUseCases, error) {
	var nilm managedUseCases
	catways, err := b.NewCatwaysUseCase(app.pool, app.repos)
	if err != nil {
		return nilm, fmt.Errorf("creating catways use case: %w", err)
	}
	reservations, err := b.NewReservationsUseCase(app.pool, app.repos)
	if err != nil {
		return nilm, fmt.Errorf("creating reservations use case: %w", err)
	}
	users, err := b.NewUsersUseCase(app.pool, app.repos)
	if err != nil {
		return nilm, fmt.Errorf("creating users use case: %w", err)
	}
	imports, err := b.NewImportUseCase(app.pool, app.repos, reservations)
	if err != nil {
		return nilm, fmt.Errorf("creating import use case: %w", err)
	}
	return managedUseCases{
		catways:      catways,
		reservations: reservations,
		users:        users,
		imports:      imports,
	}, nil
}
