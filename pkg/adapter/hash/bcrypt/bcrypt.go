// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bcrypt implements the pkg/core/passwd.Hasher interface
// using the bcrypt adaptive hashing function, as provided by the
// golang.org/x/crypto/bcrypt module. It protects the user account
// passwords which are stored in the users table.
package bcrypt

import (
	"errors"
	"fmt"

	"github.com/momeni/catways/pkg/core/model"
	"golang.org/x/crypto/bcrypt"
)

// These constants define the acceptable range of the bcrypt cost.
const (
	MinCost     = bcrypt.MinCost
	MaxCost     = bcrypt.MaxCost
	DefaultCost = bcrypt.DefaultCost
)

// Hasher hashes passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// New instantiates a Hasher with the given cost. Each cost increment
// doubles the hashing time. The cost of existing hash strings is
// stored in them, so changing it does not invalidate older hashes.
func New(cost int) (*Hasher, error) {
	if cost < MinCost || cost > MaxCost {
		return nil, fmt.Errorf(
			"bcrypt cost (%d) is not in [%d, %d] range",
			cost, MinCost, MaxCost,
		)
	}
	return &Hasher{cost: cost}, nil
}

// Hash computes a salted bcrypt hash of pass. Passwords longer than
// 72 bytes are rejected since bcrypt ignores their extra bytes.
func (h *Hasher) Hash(pass string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pass), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", model.ErrLongPassword, err)
	}
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// Compare returns nil if pass matches the hash string.
func (h *Hasher) Compare(hash, pass string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return model.ErrInvalidCredentials
	default:
		return fmt.Errorf("%w: %w", model.ErrInvalidCredentials, err)
	}
}
