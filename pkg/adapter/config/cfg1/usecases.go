// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"fmt"
	"time"

	"github.com/momeni/catways/pkg/adapter/config/settings"
	"github.com/momeni/catways/pkg/adapter/db/postgres/catwaysrp"
	"github.com/momeni/catways/pkg/adapter/db/postgres/reservationsrp"
	"github.com/momeni/catways/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/catways/pkg/core/repo"
	"github.com/momeni/catways/pkg/core/usecase/appuc"
	"github.com/momeni/catways/pkg/core/usecase/catwaysuc"
	"github.com/momeni/catways/pkg/core/usecase/importuc"
	"github.com/momeni/catways/pkg/core/usecase/reservationsuc"
	"github.com/momeni/catways/pkg/core/usecase/usersuc"
)

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Reservations Reservations // reservations use cases settings
}

// Reservations contains the configuration settings for the
// reservations use cases.
type Reservations struct {
	// MaxLength is the maximum length of a reservation date range.
	// A nil value indicates that reservations are not limited.
	MaxLength *settings.Duration `yaml:"max-length,omitempty"`
	// MinMaxLength is the inclusive minimum acceptable value for the
	// MaxLength setting. A missing value indicates no lower bound.
	MinMaxLength *settings.Duration `yaml:"max-length-minimum,omitempty"`
	// MaxMaxLength is the inclusive maximum acceptable value for the
	// MaxLength setting. A missing value indicates no upper bound.
	MaxMaxLength *settings.Duration `yaml:"max-length-maximum,omitempty"`
}

// Repos instantiates the PostgreSQL repositories.
func (c *Config) Repos() appuc.Repos {
	return appuc.Repos{
		Catways:      catwaysrp.New(),
		Reservations: reservationsrp.New(),
		Users:        usersrp.New(),
	}
}

// NewAppUseCase creates an application use case having the PostgreSQL
// repositories which uses `c` as its use cases Builder.
func (c *Config) NewAppUseCase(p repo.Pool) (*appuc.UseCase, error) {
	return appuc.New(p, c.Repos(), c)
}

// NewCatwaysUseCase instantiates a new catways use case.
func (c *Config) NewCatwaysUseCase(
	p repo.Pool, r appuc.Repos,
) (*catwaysuc.UseCase, error) {
	return catwaysuc.New(p, r.Catways, r.Reservations)
}

// NewReservationsUseCase instantiates a new reservations use case
// based on the reservations settings.
func (c *Config) NewReservationsUseCase(
	p repo.Pool, r appuc.Repos,
) (*reservationsuc.UseCase, error) {
	opts := make([]reservationsuc.Option, 0, 1)
	if l := c.Usecases.Reservations.MaxLength; l != nil {
		d := time.Duration(*l)
		opts = append(opts, reservationsuc.WithMaxLength(d))
	}
	return reservationsuc.New(p, r.Catways, r.Reservations, opts...)
}

// NewUsersUseCase instantiates a new users use case based on the auth
// settings. It fails if no JWT secret is configured.
func (c *Config) NewUsersUseCase(
	p repo.Pool, r appuc.Repos,
) (*usersuc.UseCase, error) {
	h, err := c.Auth.NewHasher()
	if err != nil {
		return nil, fmt.Errorf("creating passwords hasher: %w", err)
	}
	tm, err := c.Auth.NewTokenManager()
	if err != nil {
		return nil, fmt.Errorf("creating tokens manager: %w", err)
	}
	opts := make([]usersuc.Option, 0, 1)
	if l := c.Auth.MinPasswordLength; l != nil {
		opts = append(opts, usersuc.WithMinPasswordLength(*l))
	}
	return usersuc.New(p, r.Users, h, tm, opts...)
}

// NewImportUseCase instantiates a new data import use case.
func (c *Config) NewImportUseCase(
	p repo.Pool, r appuc.Repos, rs *reservationsuc.UseCase,
) (*importuc.UseCase, error) {
	return importuc.New(p, r.Catways, r.Reservations, rs)
}
