// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package passwd exports the expected interface for hashing the user
// account passwords. For the corresponding implementation, check the
// pkg/adapter/hash/bcrypt package.
//
// In contrast to the pkg/core/scram package which hashes database role
// passwords in the format which is expected by PostgreSQL, this hasher
// protects the user passwords which are stored in the users table and
// verified by the login use case.
package passwd

// MaxLength is the maximum number of bytes of a password which may be
// hashed. Longer passwords are rejected with model.ErrLongPassword.
const MaxLength = 72

// Hasher represents the expectations from a password hasher.
type Hasher interface {
	// Hash computes a salted hash string for the given plaintext pass.
	// Hashing the same pass twice gives different strings.
	// A pass longer than MaxLength bytes is reported by an error
	// wrapping model.ErrLongPassword.
	Hash(pass string) (string, error)

	// Compare returns nil if pass matches the hash string which was
	// computed by Hash. A mismatch is reported by an error wrapping
	// model.ErrInvalidCredentials.
	Compare(hash, pass string) error
}
