// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "errors"

// These sentinel errors describe the business-level failures. They
// encode a description string alone and do not carry the offending
// values because callers already know about their own arguments.
// Each caller should wrap the obtained error and add the missing
// context (e.g., the catway number), so the consumer of an error chain
// can report it completely, while errors.Is can still detect its kind.
// The use cases layer wraps them by a pkg/core/cerr.Error in order to
// classify them as invalid, not-found, or conflict errors.
var (
	// ErrUnknownBerthType indicates that a string may not be parsed
	// as a known berth type.
	ErrUnknownBerthType = errors.New("unknown berth type")

	// ErrInvalidCatway indicates that catway fields are not valid.
	ErrInvalidCatway = errors.New("invalid catway")

	// ErrMissingField indicates that a required field was omitted or
	// was supplied as an empty value.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidRange indicates a date range which starts after its
	// end or is longer than the acceptable reservation length.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrOverlap indicates a scheduling conflict, that is, a date range
	// which intersects with another reservation of the same catway.
	ErrOverlap = errors.New("catway is already reserved for this period")

	// ErrDuplicateNumber indicates that a catway number is in use.
	ErrDuplicateNumber = errors.New("catway number is already in use")

	// ErrCatwayInUse indicates that a catway may not be deleted
	// because it still has reservations.
	ErrCatwayInUse = errors.New("catway has reservations")

	// ErrCatwayNotFound indicates that no catway matched a lookup.
	ErrCatwayNotFound = errors.New("catway not found")

	// ErrReservationNotFound indicates that no reservation matched
	// a lookup (or it belongs to another catway).
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrUserNotFound indicates that no user matched a lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail indicates that an email address is in use.
	ErrDuplicateEmail = errors.New("email is already in use")

	// ErrWeakPassword indicates that a password is too short.
	ErrWeakPassword = errors.New("password is too short")

	// ErrLongPassword indicates that a password exceeds the maximum
	// length which can be hashed.
	ErrLongPassword = errors.New("password is too long")

	// ErrInvalidCredentials indicates a failed login. It does not
	// reveal whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken indicates a missing, malformed, or expired
	// authentication token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrConcurrentUpdate indicates that a serializable transaction
	// could not commit because of a concurrent transaction. Retrying
	// the same request may succeed.
	ErrConcurrentUpdate = errors.New("concurrent update detected")
)
