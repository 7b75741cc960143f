// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package token exports the expected interface for issuing and
// validating the authentication tokens which are given to users after
// a successful login. See pkg/adapter/token/jwt for an implementation.
package token

import "github.com/momeni/catways/pkg/core/model"

// Manager issues tokens for callers and validates them later.
// The signing secret and the expiry duration of tokens are fixed at
// the Manager construction time.
type Manager interface {
	// Issue creates a signed token which identifies the c caller.
	Issue(c model.Caller) (string, error)

	// Validate verifies the signature and expiry of the given token
	// and returns its caller. Invalid tokens are reported by an error
	// wrapping model.ErrInvalidToken.
	Validate(token string) (*model.Caller, error)
}
