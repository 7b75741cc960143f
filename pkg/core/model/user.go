// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "github.com/google/uuid"

// User models an account which may log in and manage catways and
// reservations. PasswordHash is never serialized.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
}

// UserUpdate lists the user fields which may be changed by an update
// operation. Password holds a plaintext password which is hashed by
// the account use cases before being stored.
type UserUpdate struct {
	Username Field[string]
	Email    Field[string]
	Password Field[string]
}

// Caller is the authenticated identity which is attached to requests
// after a successful token validation.
type Caller struct {
	UserID   uuid.UUID
	Username string
}
