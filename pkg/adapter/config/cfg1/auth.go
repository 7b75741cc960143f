// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"errors"
	"fmt"
	"time"

	"github.com/momeni/catways/pkg/adapter/config/settings"
	"github.com/momeni/catways/pkg/adapter/hash/bcrypt"
	"github.com/momeni/catways/pkg/adapter/token/jwt"
)

// DefaultTokenExpiry is the validity duration of login tokens unless
// the token-expiry setting is given.
const DefaultTokenExpiry = 8 * time.Hour

// Auth contains the accounts related settings.
type Auth struct {
	// JWTSecret is the HMAC secret of login tokens. It is normally
	// passed by the CATWEB_JWT_SECRET environment variable and must
	// have at least jwt.MinSecretLength bytes. It is never written
	// out by the Marshal method.
	JWTSecret string `yaml:"jwt-secret,omitempty"`

	// TokenExpiry is the validity duration of login tokens.
	TokenExpiry *settings.Duration `yaml:"token-expiry,omitempty"`

	// BcryptCost is the bcrypt cost of user passwords hashes.
	BcryptCost *int `yaml:"bcrypt-cost,omitempty"`

	// MinPasswordLength is the minimum length of user passwords.
	// A nil value keeps the use cases layer default.
	MinPasswordLength *int `yaml:"min-password-length,omitempty"`
}

// errNoSecret indicates that login tokens may not be issued because
// no JWT secret is configured.
var errNoSecret = errors.New(
	"jwt secret is not configured (set CATWEB_JWT_SECRET)",
)

// ValidateAndNormalize fills the missing token expiry and bcrypt cost
// with their defaults and validates all auth settings. A missing JWT
// secret is accepted because database management commands need no
// tokens, but a given secret must be long enough.
func (a *Auth) ValidateAndNormalize() error {
	if a.JWTSecret != "" && len(a.JWTSecret) < jwt.MinSecretLength {
		return fmt.Errorf(
			"jwt secret must have at least %d bytes", jwt.MinSecretLength,
		)
	}
	expiry := settings.Duration(DefaultTokenExpiry)
	settings.OverwriteNil(&a.TokenExpiry, &expiry)
	if err := settings.VerifyPositive("token expiry", a.TokenExpiry); err != nil {
		return err
	}
	cost := bcrypt.DefaultCost
	settings.OverwriteNil(&a.BcryptCost, &cost)
	if c := *a.BcryptCost; c < bcrypt.MinCost || c > bcrypt.MaxCost {
		return fmt.Errorf(
			"bcrypt cost %d is not in [%d, %d]",
			c, bcrypt.MinCost, bcrypt.MaxCost,
		)
	}
	return settings.VerifyPositive(
		"min password length", a.MinPasswordLength,
	)
}

// NewHasher instantiates a bcrypt passwords hasher with the configured
// cost.
func (a Auth) NewHasher() (*bcrypt.Hasher, error) {
	return bcrypt.New(*a.BcryptCost)
}

// NewTokenManager instantiates a JWT manager with the configured
// secret and expiry.
func (a Auth) NewTokenManager() (*jwt.Manager, error) {
	if a.JWTSecret == "" {
		return nil, errNoSecret
	}
	return jwt.New([]byte(a.JWTSecret), time.Duration(*a.TokenExpiry))
}
