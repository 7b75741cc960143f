// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package importuc_test

import (
	"context"
	"testing"
	"time"

	"github.com/momeni/catways/internal/test/memrepo"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/usecase/catwaysuc"
	"github.com/momeni/catways/pkg/core/usecase/importuc"
	"github.com/momeni/catways/pkg/core/usecase/reservationsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.July, d, 0, 0, 0, 0, time.UTC)
}

func catways() []model.Catway {
	return []model.Catway{
		{Number: 1, Type: model.BerthTypeShort, State: "bon état"},
		{Number: 2, Type: model.BerthTypeLong, State: "en travaux"},
	}
}

func reservation(n, start, end int) model.Reservation {
	return model.Reservation{
		CatwayNumber: n, ClientName: "Client", BoatName: "Boat",
		StartDate: day(start), EndDate: day(end),
	}
}

func newUseCases(
	t *testing.T,
) (*importuc.UseCase, *catwaysuc.UseCase, *reservationsuc.UseCase) {
	r := require.New(t)
	s := memrepo.New(memrepo.WithoutExclusion())
	p := s.Pool()
	c, rr := memrepo.NewCatways(), memrepo.NewReservations()
	cw, err := catwaysuc.New(p, c, rr)
	r.NoError(err)
	rs, err := reservationsuc.New(p, c, rr)
	r.NoError(err)
	im, err := importuc.New(p, c, rr, rs)
	r.NoError(err)
	return im, cw, rs
}

func TestImportReplacesData(t *testing.T) {
	ctx := context.Background()
	r := require.New(t)
	im, cw, rs := newUseCases(t)
	_, err := cw.Create(ctx, 9, model.BerthTypeLong, "old")
	r.NoError(err)
	_, err = rs.Create(ctx, 9, "Old", "Boat", day(1), day(2))
	r.NoError(err)

	s, err := im.Import(ctx, catways(), []model.Reservation{
		reservation(1, 1, 5), reservation(1, 6, 9), reservation(2, 1, 5),
	})
	r.NoError(err)
	r.Equal(importuc.Summary{
		DeletedCatways: 1, DeletedReservations: 1,
		ImportedCatways: 2, ImportedReservations: 3,
	}, *s)

	list, err := cw.List(ctx)
	r.NoError(err)
	r.Len(list, 2)
	r.Equal(1, list[0].Number)
	all, err := rs.List(ctx)
	r.NoError(err)
	r.Len(all, 3)
}

func TestImportIsAtomic(t *testing.T) {
	ctx := context.Background()
	im, cw, rs := newUseCases(t)
	_, err := cw.Create(ctx, 9, model.BerthTypeLong, "old")
	require.NoError(t, err)

	for name, tc := range map[string]struct {
		catways      []model.Catway
		reservations []model.Reservation
		kind         cerr.Kind
		target       error
	}{
		"overlap": {
			catways(),
			[]model.Reservation{reservation(1, 1, 5), reservation(1, 5, 9)},
			cerr.KindConflict, model.ErrOverlap,
		},
		"touching on the same catway": {
			catways(),
			[]model.Reservation{
				reservation(2, 10, 12), reservation(1, 1, 5),
				reservation(2, 1, 10),
			},
			cerr.KindConflict, model.ErrOverlap,
		},
		"unknown catway": {
			catways(),
			[]model.Reservation{reservation(3, 1, 5)},
			cerr.KindNotFound, model.ErrCatwayNotFound,
		},
		"duplicate number": {
			append(catways(), model.Catway{
				Number: 1, Type: model.BerthTypeLong, State: "x",
			}),
			nil,
			cerr.KindConflict, model.ErrDuplicateNumber,
		},
		"invalid catway": {
			[]model.Catway{{Number: -1, Type: model.BerthTypeLong}},
			nil,
			cerr.KindInvalid, model.ErrInvalidCatway,
		},
		"invalid range": {
			catways(),
			[]model.Reservation{reservation(1, 5, 1)},
			cerr.KindInvalid, model.ErrInvalidRange,
		},
	} {
		_, err := im.Import(ctx, tc.catways, tc.reservations)
		assert.True(t, cerr.Is(err, tc.kind), "%s: %v", name, err)
		assert.ErrorIs(t, err, tc.target, name)
		list, err := cw.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1, name)
		assert.Equal(t, 9, list[0].Number, name)
	}
	all, err := rs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
