// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the Hasher interface which the schema
// repository uses while the database initialization use case renews
// the passwords of the admin and catweb roles. Only the stored hash
// format is needed here; the SCRAM conversations themselves run between
// PostgreSQL and its driver. For the implementation, check the
// pkg/adapter/hash/scram package.
//
// User account passwords are not hashed by this interface; see the
// pkg/core/passwd package for them.
package scram

// Hasher computes the SCRAM verifier of a database role password.
type Hasher interface {
	// Hash returns the verifier of pass for the base64 encoded salt
	// (or a random salt if it is empty) and iters PBKDF2 iterations,
	// in the format which may be given to ALTER ROLE ... PASSWORD.
	Hash(pass, salt string, iters int) (string, error)
}
