// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package jwt implements the pkg/core/token.Manager interface using
// HMAC-SHA256 signed JSON Web Tokens, as provided by the
// github.com/golang-jwt/jwt/v5 module.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/core/model"
)

// MinSecretLength is the minimum acceptable length of the signing
// secret in bytes, matching the HS256 output length.
const MinSecretLength = 32

// Issuer is recorded in the iss claim of all tokens.
const Issuer = "catweb"

// Claims represents the JWT claims of a login token.
type Claims struct {
	UserID   uuid.UUID `json:"uid"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// Manager issues and validates tokens with a fixed secret and expiry.
type Manager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// Option is a functional option for the New function.
type Option func(m *Manager) error

// WithClock replaces the time.Now function which is used for the
// computation of issue and expiry times, and their validation.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) error {
		if now == nil {
			return errors.New("clock function is nil")
		}
		m.now = now
		return nil
	}
}

// New instantiates a Manager. The secret must have at least
// MinSecretLength bytes and expiry must be positive.
func New(secret []byte, expiry time.Duration, opts ...Option) (*Manager, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf(
			"secret has %d bytes, but at least %d bytes are required",
			len(secret), MinSecretLength,
		)
	}
	if expiry <= 0 {
		return nil, fmt.Errorf("expiry (%v) is not positive", expiry)
	}
	m := &Manager{
		secret: append([]byte(nil), secret...),
		expiry: expiry,
		now:    time.Now,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return m, nil
}

// Issue creates a signed token for the c caller which expires after
// the configured expiry duration.
func (m *Manager) Issue(c model.Caller) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:   c.UserID,
		Username: c.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   c.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return s, nil
}

// Validate verifies the token signature, issuer, and expiry time and
// returns its caller. All failures wrap the model.ErrInvalidToken.
func (m *Manager) Validate(token string) (*model.Caller, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(
		token, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf(
					"unexpected signing method: %v", t.Header["alg"],
				)
			}
			return m.secret, nil
		},
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}
	if !t.Valid || claims.UserID == uuid.Nil {
		return nil, model.ErrInvalidToken
	}
	return &model.Caller{UserID: claims.UserID, Username: claims.Username}, nil
}
