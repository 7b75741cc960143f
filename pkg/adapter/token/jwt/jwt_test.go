// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package jwt_test

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/adapter/token/jwt"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte(strings.Repeat("s", jwt.MinSecretLength))

func TestIssueAndValidate(t *testing.T) {
	r := require.New(t)
	m, err := jwt.New(secret, time.Hour)
	r.NoError(err)
	c := model.Caller{UserID: uuid.New(), Username: "alice"}
	tkn, err := m.Issue(c)
	r.NoError(err)
	got, err := m.Validate(tkn)
	r.NoError(err)
	r.Equal(c, *got)

	_, err = m.Validate(tkn + "x")
	r.ErrorIs(err, model.ErrInvalidToken, "tampered signature")
	_, err = m.Validate("")
	r.ErrorIs(err, model.ErrInvalidToken)

	other, err := jwt.New([]byte(strings.Repeat("o", 40)), time.Hour)
	r.NoError(err)
	_, err = other.Validate(tkn)
	r.ErrorIs(err, model.ErrInvalidToken, "another secret")
}

func TestExpiry(t *testing.T) {
	r := require.New(t)
	now := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)
	m, err := jwt.New(secret, time.Hour, jwt.WithClock(func() time.Time {
		return now
	}))
	r.NoError(err)
	tkn, err := m.Issue(model.Caller{UserID: uuid.New(), Username: "bob"})
	r.NoError(err)
	_, err = m.Validate(tkn)
	r.NoError(err)
	now = now.Add(2 * time.Hour)
	_, err = m.Validate(tkn)
	r.ErrorIs(err, model.ErrInvalidToken)
	r.ErrorIs(err, gojwt.ErrTokenExpired)
}

func TestRejectsOtherAlgorithms(t *testing.T) {
	m, err := jwt.New(secret, time.Hour)
	require.NoError(t, err)
	claims := jwt.Claims{
		UserID: uuid.New(),
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    jwt.Issuer,
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tkn, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).
		SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Validate(tkn)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestNewValidation(t *testing.T) {
	_, err := jwt.New([]byte("short"), time.Hour)
	assert.Error(t, err)
	_, err = jwt.New(secret, 0)
	assert.Error(t, err)
	_, err = jwt.New(secret, time.Hour, jwt.WithClock(nil))
	assert.Error(t, err)
}
