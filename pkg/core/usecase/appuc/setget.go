// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package appuc

import (
	"github.com/momeni/catways/pkg/core/usecase/catwaysuc"
	"github.com/momeni/catways/pkg/core/usecase/importuc"
	"github.com/momeni/catways/pkg/core/usecase/reservationsuc"
	"github.com/momeni/catways/pkg/core/usecase/usersuc"
)

func (app *UseCase) updateAll(managed managedUseCases) {
	app.rwlock.Lock()
	defer app.rwlock.Unlock()
	app.managed = managed
}

// CatwaysUseCase returns the current catways use case.
func (app *UseCase) CatwaysUseCase() *catwaysuc.UseCase {
	app.rwlock.RLock()
	defer app.rwlock.RUnlock()
	return app.managed.catways
}

// ReservationsUseCase returns the current reservations use case.
func (app *UseCase) ReservationsUseCase() *reservationsuc.UseCase {
	app.rwlock.RLock()
	defer app.rwlock.RUnlock()
	return app.managed.reservations
}

// UsersUseCase returns the current users use case.
func (app *UseCase) UsersUseCase() *usersuc.UseCase {
	app.rwlock.RLock()
	defer app.rwlock.RUnlock()
	return app.managed.users
}

// ImportUseCase returns the current data import use case.
func (app *UseCase) ImportUseCase() *importuc.UseCase {
	app.rwlock.RLock()
	defer app.rwlock.RUnlock()
	return app.managed.imports
}
