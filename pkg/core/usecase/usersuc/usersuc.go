// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersuc contains the users UseCase which is the only owner
// of the user credentials. It manages the user accounts, logs users in
// by issuing authentication tokens, and authenticates the callers of
// other use cases by validating their tokens.
// Password hashing and token signing are delegated to the passwd.Hasher
// and token.Manager interfaces which are passed to the New function,
// so no secret is kept in this package.
package usersuc

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/log"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/passwd"
	"github.com/momeni/catways/pkg/core/repo"
	"github.com/momeni/catways/pkg/core/token"
)

// DefaultMinPasswordLength is the minimum length of passwords unless
// the WithMinPasswordLength option is used.
const DefaultMinPasswordLength = 5

// UseCase represents the users use case.
type UseCase struct {
	pool    repo.Pool
	usersrp repo.Users
	hasher  passwd.Hasher
	tokens  token.Manager

	minPasswordLength int
}

// New instantiates a users use case.
// The h hasher protects passwords and the tm token manager issues and
// validates the login tokens. Optional parameters are passed as a
// series of functional options.
func New(
	p repo.Pool,
	u repo.Users,
	h passwd.Hasher,
	tm token.Manager,
	opts ...Option,
) (*UseCase, error) {
	if p == nil || u == nil || h == nil || tm == nil {
		return nil, errors.New("pool, repo, hasher, and tokens are required")
	}
	uc := &UseCase{pool: p, usersrp: u, hasher: h, tokens: tm}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.minPasswordLength == 0 {
		uc.minPasswordLength = DefaultMinPasswordLength
	}
	return uc, nil
}

// Create use case adds a user account. The email is normalized to
// lower-case and must not be used by another account, otherwise, a
// cerr.Conflict error wrapping model.ErrDuplicateEmail is returned.
func (users *UseCase) Create(
	ctx context.Context, username, email, password string,
) (user *model.User, err error) {
	u := &model.User{Username: strings.TrimSpace(username)}
	if u.Email, err = normalizeEmail(email); err != nil {
		return nil, err
	}
	if u.Username == "" {
		return nil, cerr.BadRequest(
			fmt.Errorf("%w: username", model.ErrMissingField),
		)
	}
	if u.PasswordHash, err = users.hash(password); err != nil {
		return nil, err
	}
	err = users.serializable(ctx, func(ctx context.Context, tx repo.Tx) error {
		q := users.usersrp.Tx(tx)
		if err := ensureFree(ctx, q, u.Email, uuid.Nil); err != nil {
			return err
		}
		user, err = q.Create(ctx, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "user is created", log.Stringer("id", user.ID))
	return user, nil
}

// Update use case changes the supplied fields of the id user.
// A supplied password is hashed again.
func (users *UseCase) Update(
	ctx context.Context, id uuid.UUID, uu model.UserUpdate,
) (user *model.User, err error) {
	var email, hash string
	if uu.Email.Set {
		if email, err = normalizeEmail(uu.Email.Value); err != nil {
			return nil, err
		}
	}
	if uu.Password.Set {
		if hash, err = users.hash(uu.Password.Value); err != nil {
			return nil, err
		}
	}
	if uu.Username.Set && strings.TrimSpace(uu.Username.Value) == "" {
		return nil, cerr.BadRequest(
			fmt.Errorf("%w: username", model.ErrMissingField),
		)
	}
	err = users.serializable(ctx, func(ctx context.Context, tx repo.Tx) error {
		q := users.usersrp.Tx(tx)
		cur, err := q.Get(ctx, id)
		if err != nil {
			return err
		}
		u := *cur
		u.Username = strings.TrimSpace(uu.Username.Or(u.Username))
		if uu.Email.Set && email != cur.Email {
			if err := ensureFree(ctx, q, email, id); err != nil {
				return err
			}
			u.Email = email
		}
		if uu.Password.Set {
			u.PasswordHash = hash
		}
		user, err = q.Update(ctx, &u)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete use case removes the id user account. Tokens which were
// issued for that user are rejected by the Authenticate method.
func (users *UseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return users.usersrp.Conn(c).Delete(ctx, id)
	})
}

// Get use case returns the id user.
func (users *UseCase) Get(
	ctx context.Context, id uuid.UUID,
) (user *model.User, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		user, err = users.usersrp.Conn(c).Get(ctx, id)
		return err
	})
	if err != nil {
		user = nil
	}
	return
}

// List use case returns all users, ordered by their usernames.
func (users *UseCase) List(
	ctx context.Context,
) (list []*model.User, err error) {
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		list, err = users.usersrp.Conn(c).List(ctx)
		return err
	})
	if err != nil {
		list = nil
	}
	return
}

// Login use case verifies the email and password of a user and issues
// a token for it. Unknown emails and wrong passwords are reported
// similarly as a cerr.Authentication error.
func (users *UseCase) Login(
	ctx context.Context, email, password string,
) (tkn string, user *model.User, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	err = users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		user, err = users.usersrp.Conn(c).GetByEmail(ctx, email)
		return err
	})
	switch {
	case cerr.Is(err, cerr.KindNotFound):
		return "", nil, cerr.Authentication(model.ErrInvalidCredentials)
	case err != nil:
		return "", nil, err
	}
	if err = users.hasher.Compare(user.PasswordHash, password); err != nil {
		log.Info(ctx, "login is rejected", log.Stringer("id", user.ID))
		return "", nil, cerr.Authentication(model.ErrInvalidCredentials)
	}
	tkn, err = users.tokens.Issue(model.Caller{
		UserID: user.ID, Username: user.Username,
	})
	if err != nil {
		return "", nil, cerr.Internal(fmt.Errorf("issuing token: %w", err))
	}
	return tkn, user, nil
}

// Authenticate use case validates the tkn token and returns its
// caller, as long as the caller user account still exists.
func (users *UseCase) Authenticate(
	ctx context.Context, tkn string,
) (*model.Caller, error) {
	caller, err := users.tokens.Validate(tkn)
	if err != nil {
		return nil, cerr.Authentication(err)
	}
	if _, err = users.Get(ctx, caller.UserID); err != nil {
		if cerr.Is(err, cerr.KindNotFound) {
			return nil, cerr.Authentication(model.ErrInvalidToken)
		}
		return nil, err
	}
	return caller, nil
}

func (users *UseCase) hash(password string) (string, error) {
	if len(password) < users.minPasswordLength {
		return "", cerr.BadRequest(fmt.Errorf(
			"%w: at least %d characters are required",
			model.ErrWeakPassword, users.minPasswordLength,
		))
	}
	if len(password) > passwd.MaxLength {
		return "", cerr.BadRequest(fmt.Errorf(
			"%w: at most %d bytes are allowed",
			model.ErrLongPassword, passwd.MaxLength,
		))
	}
	h, err := users.hasher.Hash(password)
	if errors.Is(err, model.ErrLongPassword) {
		return "", cerr.BadRequest(err)
	}
	if err != nil {
		return "", cerr.Internal(fmt.Errorf("hashing password: %w", err))
	}
	return h, nil
}

func (users *UseCase) serializable(
	ctx context.Context, h repo.TxHandler,
) error {
	err := users.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.TxWithIsolation(ctx, repo.Serializable, h)
	})
	if err != nil && errors.Is(err, model.ErrConcurrentUpdate) {
		return cerr.Conflict(model.ErrConcurrentUpdate)
	}
	return err
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", cerr.BadRequest(
			fmt.Errorf("%w: email", model.ErrMissingField),
		)
	}
	a, err := mail.ParseAddress(email)
	if err != nil || a.Address != email {
		return "", cerr.BadRequest(fmt.Errorf("invalid email: %q", email))
	}
	return email, nil
}

func ensureFree(
	ctx context.Context, q repo.UsersQueryer, email string, self uuid.UUID,
) error {
	u, err := q.GetByEmail(ctx, email)
	switch {
	case err == nil && u.ID != self:
		return cerr.Conflict(model.ErrDuplicateEmail)
	case err == nil, cerr.Is(err, cerr.KindNotFound):
		return nil
	default:
		return fmt.Errorf("looking up email: %w", err)
	}
}
