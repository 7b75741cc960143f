// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reservationsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/catways/pkg/adapter/db/postgres"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gReservation struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid"`
	CatwayNumber int
	ClientName   string
	BoatName     string
	StartDate    time.Time
	EndDate      time.Time
}

func (gr *gReservation) TableName() string {
	return "reservations"
}

func (gr *gReservation) Model() *model.Reservation {
	return &model.Reservation{
		ID:           gr.ID,
		CatwayNumber: gr.CatwayNumber,
		ClientName:   gr.ClientName,
		BoatName:     gr.BoatName,
		StartDate:    gr.StartDate.UTC(),
		EndDate:      gr.EndDate.UTC(),
	}
}

func fromModel(r *model.Reservation) *gReservation {
	return &gReservation{
		ID:           r.ID,
		CatwayNumber: r.CatwayNumber,
		ClientName:   r.ClientName,
		BoatName:     r.BoatName,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
	}
}

func models(grs []gReservation) []*model.Reservation {
	list := make([]*model.Reservation, 0, len(grs))
	for i := range grs {
		list = append(list, grs[i].Model())
	}
	return list
}

func notFound(id uuid.UUID) error {
	return cerr.NotFound(
		fmt.Errorf("%w: id=%s", model.ErrReservationNotFound, id),
	)
}

func Get[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) (*model.Reservation, error) {
	var gr gReservation
	err := q.GORM(ctx).Where("id=?", id).Take(&gr).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, notFound(id)
	case err != nil:
		return nil, fmt.Errorf("query: %w", postgres.MapError(err))
	}
	return gr.Model(), nil
}

func List[Q postgres.Queryer](ctx context.Context, q Q) ([]*model.Reservation, error) {
	var grs []gReservation
	err := q.GORM(ctx).Order("catway_number, start_date").Find(&grs).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", postgres.MapError(err))
	}
	return models(grs), nil
}

func ListByCatway[Q postgres.Queryer](ctx context.Context, q Q, catwayNumber int) ([]*model.Reservation, error) {
	var grs []gReservation
	err := q.GORM(ctx).Where(
		"catway_number=?", catwayNumber,
	).Order("start_date").Find(&grs).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", postgres.MapError(err))
	}
	return models(grs), nil
}

func CountByCatway[Q postgres.Queryer](ctx context.Context, q Q, catwayNumber int) (int64, error) {
	var n int64
	err := q.GORM(ctx).Model(&gReservation{}).Where(
		"catway_number=?", catwayNumber,
	).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("query: %w", postgres.MapError(err))
	}
	return n, nil
}

func Delete[Q postgres.Queryer](ctx context.Context, q Q, id uuid.UUID) error {
	res := q.GORM(ctx).Where("id=?", id).Delete(&gReservation{})
	if err := res.Error; err != nil {
		return fmt.Errorf("delete: %w", postgres.MapError(err))
	}
	if res.RowsAffected == 0 {
		return notFound(id)
	}
	return nil
}

// Create inserts r. The exclusion constraint violations are reported
// as cerr.Conflict errors wrapping model.ErrOverlap and an unknown
// catway number as a cerr.NotFound error.
func Create(ctx context.Context, tx *postgres.Tx, r *model.Reservation) (*model.Reservation, error) {
	gr := fromModel(r)
	if gr.ID == uuid.Nil {
		gr.ID = uuid.New()
	}
	if err := tx.GORM(ctx).Create(gr).Error; err != nil {
		return nil, fmt.Errorf("insert: %w", postgres.MapError(err))
	}
	return gr.Model(), nil
}

func Update(ctx context.Context, tx *postgres.Tx, r *model.Reservation) (*model.Reservation, error) {
	var grs []gReservation
	res := tx.GORM(ctx).Model(&grs).Clauses(clause.Returning{}).Select(
		"catway_number", "client_name", "boat_name",
		"start_date", "end_date",
	).Where(
		"id=?", r.ID,
	).Updates(fromModel(r))
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("update: %w", postgres.MapError(err))
	}
	if len(grs) != 1 {
		return nil, notFound(r.ID)
	}
	return grs[0].Model(), nil
}

func DeleteAll(ctx context.Context, tx *postgres.Tx) (int64, error) {
	n, err := tx.Exec(ctx, "DELETE FROM reservations")
	if err != nil {
		return 0, fmt.Errorf("delete: %w", err)
	}
	return n, nil
}
