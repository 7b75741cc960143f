// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bcrypt_test

import (
	"strings"
	"testing"

	"github.com/momeni/catways/pkg/adapter/hash/bcrypt"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	r := require.New(t)
	h, err := bcrypt.New(bcrypt.MinCost)
	r.NoError(err)
	h1, err := h.Hash("secret")
	r.NoError(err)
	h2, err := h.Hash("secret")
	r.NoError(err)
	r.NotEqual(h1, h2, "hashes must be salted")
	r.True(strings.HasPrefix(h1, "$2a$04$"), "got %q", h1)

	r.NoError(h.Compare(h1, "secret"))
	r.ErrorIs(h.Compare(h1, "Secret"), model.ErrInvalidCredentials)
	r.ErrorIs(h.Compare("not-a-hash", "secret"), model.ErrInvalidCredentials)

	_, err = h.Hash(strings.Repeat("x", 73))
	r.ErrorIs(err, model.ErrLongPassword, "too long passwords")
}

func TestNewRejectsCosts(t *testing.T) {
	_, err := bcrypt.New(bcrypt.MinCost - 1)
	assert.Error(t, err)
	_, err = bcrypt.New(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}
