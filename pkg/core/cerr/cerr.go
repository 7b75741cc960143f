// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr contains the typed errors of the core layers.
// Use cases classify each failure by wrapping it in an Error with a
// Kind and the HTTP status code which a REST adapter should report.
// Errors without an Error in their chain are internal errors.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error for its consumers. A caller may retry an
// Invalid or Conflict error with different inputs, but no error kind
// is retried automatically.
type Kind int

// Valid values for the Kind enum.
const (
	KindInternal Kind = iota // persistence or unexpected failure

	KindInvalid        // malformed or missing input
	KindNotFound       // referenced entity is absent
	KindConflict       // overlap or duplicate-key violation
	KindAuthentication // caller identity is unknown
	KindAuthorization  // caller is not permitted
)

// String returns a stable lower-case name for k, so it can be
// serialized in error responses.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not-found"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	default:
		return "internal"
	}
}

// Error wraps Err and classifies it with a Kind.
type Error struct {
	Kind           Kind
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// BadRequest classifies err as an Invalid input.
func BadRequest(err error) *Error {
	return &Error{
		Kind: KindInvalid, Err: err, HTTPStatusCode: http.StatusBadRequest,
	}
}

func Authentication(err error) *Error {
	return &Error{
		Kind:           KindAuthentication,
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
	}
}

func Authorization(err error) *Error {
	return &Error{
		Kind:           KindAuthorization,
		Err:            err,
		HTTPStatusCode: http.StatusForbidden,
	}
}

func NotFound(err error) *Error {
	return &Error{
		Kind: KindNotFound, Err: err, HTTPStatusCode: http.StatusNotFound,
	}
}

// Conflict classifies err as an overlap or duplicate-key violation.
// Conflicts are reported with the 400 status code, like the invalid
// inputs, and clients tell them apart using the Kind.
func Conflict(err error) *Error {
	return &Error{
		Kind: KindConflict, Err: err, HTTPStatusCode: http.StatusBadRequest,
	}
}

func Internal(err error) *Error {
	return &Error{
		Kind:           KindInternal,
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
	}
}

// KindOf returns the Kind of the first Error in the err chain.
// If err is nil, ok will be false. If err has no Error in its chain,
// KindInternal and true will be returned.
func KindOf(err error) (k Kind, ok bool) {
	if err == nil {
		return KindInternal, false
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return KindInternal, true
}

// Is reports if err is classified with the k Kind.
func Is(err error, k Kind) bool {
	kk, ok := KindOf(err)
	return ok && kk == k
}
