// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package appuc

import (
	"github.com/momeni/catways/pkg/core/repo"
	"github.com/momeni/catways/pkg/core/usecase/catwaysuc"
	"github.com/momeni/catways/pkg/core/usecase/importuc"
	"github.com/momeni/catways/pkg/core/usecase/reservationsuc"
	"github.com/momeni/catways/pkg/core/usecase/usersuc"
)

// Builder interface specifies the expectations of the application
// UseCase from a use case factory. It is realized by the configuration
// settings, so each created use case takes its optional settings (like
// the maximum reservation length) from them, while the use cases layer
// stays independent of the configuration format.
//
// When settings are changed and a new Builder instance is obtained,
// the application UseCase can be reloaded in order to create new use
// case objects and replace the old ones atomically. This replacement
// strategy requires the resources packages to ask the application
// UseCase for the actual use case objects, right before using them.
type Builder interface {
	// NewCatwaysUseCase creates a new catwaysuc UseCase object having
	// the provided database connection pool and repositories.
	NewCatwaysUseCase(p repo.Pool, r Repos) (*catwaysuc.UseCase, error)

	// NewReservationsUseCase creates a new reservationsuc UseCase
	// object having the provided database connection pool and
	// repositories.
	NewReservationsUseCase(
		p repo.Pool, r Repos,
	) (*reservationsuc.UseCase, error)

	// NewUsersUseCase creates a new usersuc UseCase object having the
	// provided database connection pool and users repository. The
	// passwords hasher and the tokens manager are chosen by Builder.
	NewUsersUseCase(p repo.Pool, r Repos) (*usersuc.UseCase, error)

	// NewImportUseCase creates a new importuc UseCase object which
	// validates imported reservations using the rs use case.
	NewImportUseCase(
		p repo.Pool, r Repos, rs *reservationsuc.UseCase,
	) (*importuc.UseCase, error)
}
