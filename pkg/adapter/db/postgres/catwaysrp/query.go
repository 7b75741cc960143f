// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package catwaysrp

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

type gCatway struct {
	ID     uuid.UUID `gorm:"primaryKey;type:uuid"`
	Number int
	Type   string
	State  string
}

func (gc *gCatway) TableName() string {
	return "catways"
}

func (gc *gCatway) Model() (*model.Catway, error) {
	bt, err := model.ParseBerthType(gc.Type)
	if err != nil {
		return nil, fmt.Errorf("catway %d: %w", gc.Number, err)
	}
	return &model.Catway{
		ID:     gc.ID,
		Number: gc.Number,
		Type:   bt,
		State:  gc.State,
	}, nil
}

func fromModel(c *model.Catway) *gCatway {
	return &gCatway{
		ID:     c.ID,
		Number: c.Number,
		Type:   c.Type.String(),
		State:  c.State,
	}
}

func Create[Q postgres.Queryer](ctx context.Context, q Q, c *model.Catway) (*model.Catway, error) {
	gc := fromModel(c)
	if gc.ID == uuid.Nil {
		gc.ID = uuid.New()
	}
	if err := q.GORM(ctx).Create(gc).Error; err != nil {
		return nil, fmt.Errorf("insert: %w", postgres.MapError(err))
	}
	return gc.Model()
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*model.Catway, error) {
	return take(q.GORM(ctx).Where("id=?", id), fmt.Sprintf("id=%s", id))
}

func GetByNumber[Q postgres.Queryer](ctx context.Context, q Q, number int) (*model.Catway, error) {
	return take(
		q.GORM(ctx).Where("number=?", number),
		fmt.Sprintf("number=%d", number),
	)
}

func take(gdb *gorm.DB, key string) (*model.Catway, error) {
	var gc gCatway
	err := gdb.Take(&gc).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(
			fmt.Errorf("%w: %s", model.ErrCatwayNotFound, key),
		)
	case err != nil:
		return nil, fmt.Errorf("query: %w", postgres.MapError(err))
	}
	return gc.Model()
}

func List[Q postgres.Queryer](ctx context.Context, q Q) ([]*model.Catway, error) {
	var gcs []gCatway
	if err := q.GORM(ctx).Order("number").Find(&gcs).Error; err != nil {
		return nil, fmt.Errorf("query: %w", postgres.MapError(err))
	}
	list := make([]*model.Catway, 0, len(gcs))
	for i := range gcs {
		c, err := gcs[i].Model()
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, nil
}

// Update replaces the number, type, and state of the c.ID catway.
// The reservations of a renumbered catway follow it because their
// foreign key is declared with ON UPDATE CASCADE.
func Update[Q postgres.Queryer](ctx context.Context, q Q, c *model.Catway) (*model.Catway, error) {
	var gcs []gCatway
	res := q.GORM(ctx).Model(&gcs).Clauses(clause.Returning{}).Select(
		"number", "type", "state",
	).Where(
		"id=?", c.ID,
	).Updates(fromModel(c))
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("update: %w", postgres.MapError(err))
	}
	if n := len(gcs); n != 1 {
		return nil, cerr.NotFound(fmt.Errorf(
			"%w: id=%s", model.ErrCatwayNotFound, c.ID,
		))
	}
	return gcs[0].Model()
}

// Delete removes the id catway. Catways which are referenced by
// reservations may not be deleted (ON DELETE RESTRICT).
func Delete[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) error {
	res := q.GORM(ctx).Where("id=?", id).Delete(&gCatway{})
	if err := res.Error; err != nil {
		return fmt.Errorf("delete: %w", postgres.MapError(err))
	}
	if res.RowsAffected == 0 {
		return cerr.NotFound(
			fmt.Errorf("%w: id=%s", model.ErrCatwayNotFound, id),
		)
	}
	return nil
}

func DeleteAll(ctx context.Context, tx *postgres.Tx) (int64, error) {
	n, err := tx.Exec(ctx, "DELETE FROM catways")
	if err != nil {
		return 0, fmt.Errorf("delete: %w", err)
	}
	return n, nil
}
