// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/catways/internal/test/memrepo"
	"github.com/momeni/catways/pkg/adapter/hash/bcrypt"
	"github.com/momeni/catways/pkg/adapter/token/jwt"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/usecase/usersuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type UsersTestSuite struct {
	Ctx context.Context
	Uc  *usersuc.UseCase
	Tm  *jwt.Manager
}

func newSuite(t *testing.T, opts ...usersuc.Option) *UsersTestSuite {
	r := require.New(t)
	h, err := bcrypt.New(bcrypt.MinCost)
	r.NoError(err)
	tm, err := jwt.New([]byte(strings.Repeat("k", 32)), time.Hour)
	r.NoError(err)
	s := memrepo.New()
	uc, err := usersuc.New(s.Pool(), memrepo.NewUsers(), h, tm, opts...)
	r.NoError(err)
	return &UsersTestSuite{Ctx: context.Background(), Uc: uc, Tm: tm}
}

func TestCreateAndLogin(t *testing.T) {
	uts := newSuite(t)
	r := require.New(t)
	u, err := uts.Uc.Create(uts.Ctx, " alice ", "Alice@Example.com", "s3cret")
	r.NoError(err)
	r.Equal("alice", u.Username)
	r.Equal("alice@example.com", u.Email)
	r.NotEqual("s3cret", u.PasswordHash)

	tkn, logged, err := uts.Uc.Login(uts.Ctx, "ALICE@example.com", "s3cret")
	r.NoError(err)
	r.Equal(u.ID, logged.ID)
	caller, err := uts.Uc.Authenticate(uts.Ctx, tkn)
	r.NoError(err)
	r.Equal(model.Caller{UserID: u.ID, Username: "alice"}, *caller)

	for _, creds := range [][2]string{
		{"alice@example.com", "wrong"},
		{"nobody@example.com", "s3cret"},
	} {
		_, _, err = uts.Uc.Login(uts.Ctx, creds[0], creds[1])
		r.True(cerr.Is(err, cerr.KindAuthentication), "got %v", err)
		r.ErrorIs(err, model.ErrInvalidCredentials)
	}
}

func TestCreateValidation(t *testing.T) {
	uts := newSuite(t)
	_, err := uts.Uc.Create(uts.Ctx, "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	for name, args := range map[string][3]string{
		"duplicate email": {"bob", "ALICE@example.com", "s3cret"},
		"missing email":   {"bob", "", "s3cret"},
		"invalid email":   {"bob", "Bob <bob@example.com>", "s3cret"},
		"missing name":    {" ", "bob@example.com", "s3cret"},
		"short password":  {"bob", "bob@example.com", "1234"},
		"long password":   {"bob", "bob@example.com", strings.Repeat("p", 73)},
	} {
		_, err := uts.Uc.Create(uts.Ctx, args[0], args[1], args[2])
		assert.Error(t, err, name)
		if name == "duplicate email" {
			assert.True(t, cerr.Is(err, cerr.KindConflict), name)
			assert.ErrorIs(t, err, model.ErrDuplicateEmail)
		} else {
			assert.True(t, cerr.Is(err, cerr.KindInvalid), "%s: %v", name, err)
		}
	}
	list, err := uts.Uc.List(uts.Ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUpdate(t *testing.T) {
	uts := newSuite(t)
	r := require.New(t)
	alice, err := uts.Uc.Create(uts.Ctx, "alice", "alice@example.com", "s3cret")
	r.NoError(err)
	_, err = uts.Uc.Create(uts.Ctx, "bob", "bob@example.com", "s3cret")
	r.NoError(err)

	_, err = uts.Uc.Update(uts.Ctx, alice.ID, model.UserUpdate{
		Email: model.Some("bob@example.com"),
	})
	r.ErrorIs(err, model.ErrDuplicateEmail)

	u, err := uts.Uc.Update(uts.Ctx, alice.ID, model.UserUpdate{
		Username: model.Some("alicia"),
		Password: model.Some("n3w-secret"),
	})
	r.NoError(err)
	r.Equal("alicia", u.Username)
	r.Equal("alice@example.com", u.Email)
	_, _, err = uts.Uc.Login(uts.Ctx, "alice@example.com", "s3cret")
	r.ErrorIs(err, model.ErrInvalidCredentials, "old password")
	_, _, err = uts.Uc.Login(uts.Ctx, "alice@example.com", "n3w-secret")
	r.NoError(err)

	_, err = uts.Uc.Update(uts.Ctx, uuid.New(), model.UserUpdate{})
	r.True(cerr.Is(err, cerr.KindNotFound), "got %v", err)
	_, err = uts.Uc.Update(uts.Ctx, alice.ID, model.UserUpdate{
		Password: model.Some("abc"),
	})
	r.ErrorIs(err, model.ErrWeakPassword)
	_, err = uts.Uc.Update(uts.Ctx, alice.ID, model.UserUpdate{
		Password: model.Some(strings.Repeat("p", 73)),
	})
	r.True(cerr.Is(err, cerr.KindInvalid), "got %v", err)
	r.ErrorIs(err, model.ErrLongPassword)
	_, err = uts.Uc.Create(
		uts.Ctx, "carol", "carol@example.com", strings.Repeat("p", 72),
	)
	r.NoError(err, "72 bytes are accepted")
}

func TestDeletedUsersTokens(t *testing.T) {
	uts := newSuite(t)
	r := require.New(t)
	u, err := uts.Uc.Create(uts.Ctx, "alice", "alice@example.com", "s3cret")
	r.NoError(err)
	tkn, _, err := uts.Uc.Login(uts.Ctx, "alice@example.com", "s3cret")
	r.NoError(err)
	r.NoError(uts.Uc.Delete(uts.Ctx, u.ID))
	_, err = uts.Uc.Authenticate(uts.Ctx, tkn)
	r.True(cerr.Is(err, cerr.KindAuthentication), "got %v", err)
	r.ErrorIs(err, model.ErrInvalidToken)

	_, err = uts.Uc.Authenticate(uts.Ctx, "garbage")
	r.True(cerr.Is(err, cerr.KindAuthentication), "got %v", err)
	err = uts.Uc.Delete(uts.Ctx, u.ID)
	r.True(cerr.Is(err, cerr.KindNotFound), "got %v", err)
}

func TestMinPasswordLength(t *testing.T) {
	uts := newSuite(t, usersuc.WithMinPasswordLength(10))
	_, err := uts.Uc.Create(uts.Ctx, "alice", "alice@example.com", "s3cret")
	assert.ErrorIs(t, err, model.ErrWeakPassword)
	_, err = uts.Uc.Create(uts.Ctx, "alice", "alice@example.com", "long-s3cret")
	assert.NoError(t, err)

	_, err = usersuc.New(nil, nil, nil, nil)
	assert.Error(t, err)
}
