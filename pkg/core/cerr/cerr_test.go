// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	_, ok := cerr.KindOf(nil)
	assert.False(t, ok, "nil error has no kind")

	k, ok := cerr.KindOf(errors.New("disk is full"))
	assert.True(t, ok)
	assert.Equal(t, cerr.KindInternal, k, "untyped errors are internal")

	err := fmt.Errorf(
		"creating reservation: %w",
		cerr.Conflict(fmt.Errorf("%w: catway=3", model.ErrOverlap)),
	)
	assert.True(t, cerr.Is(err, cerr.KindConflict))
	assert.ErrorIs(t, err, model.ErrOverlap)
	assert.False(t, cerr.Is(err, cerr.KindInvalid))
}

func TestStatusCodes(t *testing.T) {
	e := errors.New("e")
	for _, tc := range []struct {
		err    *cerr.Error
		status int
		kind   string
	}{
		{cerr.BadRequest(e), http.StatusBadRequest, "invalid"},
		{cerr.Conflict(e), http.StatusBadRequest, "conflict"},
		{cerr.NotFound(e), http.StatusNotFound, "not-found"},
		{cerr.Authentication(e), http.StatusUnauthorized, "authentication"},
		{cerr.Authorization(e), http.StatusForbidden, "authorization"},
		{cerr.Internal(e), http.StatusInternalServerError, "internal"},
	} {
		assert.Equal(t, tc.status, tc.err.HTTPStatusCode, tc.kind)
		assert.Equal(t, tc.kind, tc.err.Kind.String())
	}
}
