// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/adapter/db/postgres"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gUser struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid"`
	Username     string
	Email        string
	PasswordHash string
}

func (gu *gUser) TableName() string {
	return "users"
}

func (gu *gUser) Model() *model.User {
	return &model.User{
		ID:           gu.ID,
		Username:     gu.Username,
		Email:        gu.Email,
		PasswordHash: gu.PasswordHash,
	}
}

func fromModel(u *model.User) *gUser {
	return &gUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
	}
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, u *model.User) (*model.User, error) {
	gu := fromModel(u)
	if gu.ID == uuid.Nil {
		gu.ID = uuid.New()
	}
	if err := q.GORM(ctx).Create(gu).Error; err != nil {
		return nil, fmt.Errorf("insert: %w", postgres.MapError(err))
	}
	return gu.Model(), nil
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*model.User, error) {
	return take(q.GORM(ctx).Where("id=?", id), fmt.Sprintf("id=%s", id))
}

// GetByEmail finds a user by the lower-case email address.
func GetByEmail[Q postgres.Queryer](ctx context.Context, q Q, email string) (*model.User, error) {
	return take(q.GORM(ctx).Where("lower(email)=lower(?)", email), "email")
}

func take(gdb *gorm.DB, key string) (*model.User, error) {
	var gu gUser
	err := gdb.Take(&gu).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(
			fmt.Errorf("%w: %s", model.ErrUserNotFound, key),
		)
	case err != nil:
		return nil, fmt.Errorf("query: %w", postgres.MapError(err))
	}
	return gu.Model(), nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q) ([]*model.User, error) {
	var gus []gUser
	if err := q.GORM(ctx).Order("username").Find(&gus).Error; err != nil {
		return nil, fmt.Errorf("query: %w", postgres.MapError(err))
	}
	list := make([]*model.User, 0, len(gus))
	for i := range gus {
		list = append(list, gus[i].Model())
	}
	return list, nil
}

func Update[Q postgres.Queryer](ctx context.Context, q Q, u *model.User) (*model.User, error) {
	var gus []gUser
	res := q.GORM(ctx).Model(&gus).Clauses(clause.Returning{}).Select(
		"username", "email", "password_hash",
	).Where(
		"id=?", u.ID,
	).Updates(fromModel(u))
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("update: %w", postgres.MapError(err))
	}
	if len(gus) != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("%w: id=%s", model.ErrUserNotFound, u.ID),
		)
	}
	return gus[0].Model(), nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) error {
	res := q.GORM(ctx).Where("id=?", id).Delete(&gUser{})
	if err := res.Error; err != nil {
		return fmt.Errorf("delete: %w", postgres.MapError(err))
	}
	if res.RowsAffected == 0 {
		return cerr.NotFound(
			fmt.Errorf("%w: id=%s", model.ErrUserNotFound, id),
		)
	}
	return nil
}
