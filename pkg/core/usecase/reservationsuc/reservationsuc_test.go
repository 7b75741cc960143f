// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reservationsuc_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/catways/internal/test/memrepo"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/log"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/repo"
	"github.com/momeni/catways/pkg/core/usecase/catwaysuc"
	"github.com/momeni/catways/pkg/core/usecase/reservationsuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ReservationsTestSuite struct {
	Ctx   context.Context
	Store *memrepo.Store
	Cw    *catwaysuc.UseCase
	Rs    *reservationsuc.UseCase
}

func day(d int) time.Time {
	return time.Date(2024, time.July, d, 0, 0, 0, 0, time.UTC)
}

func newSuite(
	t *testing.T, opts ...reservationsuc.Option,
) *ReservationsTestSuite {
	r := require.New(t)
	s := memrepo.New(memrepo.WithoutExclusion())
	p := s.Pool()
	c, rr := memrepo.NewCatways(), memrepo.NewReservations()
	cw, err := catwaysuc.New(p, c, rr)
	r.NoError(err, "catwaysuc.New")
	rs, err := reservationsuc.New(p, c, rr, opts...)
	r.NoError(err, "reservationsuc.New")
	ctx := context.Background()
	_, err = cw.Create(ctx, 3, model.BerthTypeLong, "bon état")
	r.NoError(err, "creating catway 3")
	_, err = cw.Create(ctx, 4, model.BerthTypeShort, "bon état")
	r.NoError(err, "creating catway 4")
	return &ReservationsTestSuite{Ctx: ctx, Store: s, Cw: cw, Rs: rs}
}

func (rts *ReservationsTestSuite) reserve(
	t *testing.T, catway, start, end int,
) *model.Reservation {
	res, err := rts.Rs.Create(
		rts.Ctx, catway, "Alice", "Nautilus", day(start), day(end),
	)
	require.NoError(t, err, "reserving [%d,%d] on %d", start, end, catway)
	return res
}

func TestReservationsUseCase(t *testing.T) {
	for name, f := range map[string]func(
		rts *ReservationsTestSuite, t *testing.T,
	){
		"unknown catway":          (*ReservationsTestSuite).TestUnknownCatway,
		"touching is a conflict":  (*ReservationsTestSuite).TestTouchingConflict,
		"disjoint ranges":         (*ReservationsTestSuite).TestDisjoint,
		"other catways":           (*ReservationsTestSuite).TestOtherCatway,
		"invalid inputs":          (*ReservationsTestSuite).TestInvalid,
		"update self exclusion":   (*ReservationsTestSuite).TestUpdateSelf,
		"update merged range":     (*ReservationsTestSuite).TestUpdateMergedRange,
		"delete then recreate":    (*ReservationsTestSuite).TestDeleteRecreate,
		"catway scoping":          (*ReservationsTestSuite).TestCatwayScoping,
		"listing":                 (*ReservationsTestSuite).TestListing,
		"concurrent creations":    (*ReservationsTestSuite).TestConcurrentCreate,
		"serialization failures":  (*ReservationsTestSuite).TestSerializationFailure,
		"renumbered catway":       (*ReservationsTestSuite).TestRenumberedCatway,
		"catway deletion blocked": (*ReservationsTestSuite).TestCatwayInUse,
		"store has no exclusion":  (*ReservationsTestSuite).TestStoreAcceptsOverlaps,
	} {
		t.Run(name, func(t *testing.T) {
			f(newSuite(t), t)
		})
	}
}

func (rts *ReservationsTestSuite) TestUnknownCatway(t *testing.T) {
	for _, rng := range [][2]time.Time{
		{day(1), day(5)},
		{day(5), day(1)}, // invalid range is not checked before
		{{}, {}},
	} {
		_, err := rts.Rs.Create(rts.Ctx, 99, "", "", rng[0], rng[1])
		assert.True(t, cerr.Is(err, cerr.KindNotFound), "got %v", err)
		assert.ErrorIs(t, err, model.ErrCatwayNotFound)
	}
	_, err := rts.Rs.ListByCatway(rts.Ctx, 99)
	assert.True(t, cerr.Is(err, cerr.KindNotFound))
}

func (rts *ReservationsTestSuite) TestTouchingConflict(t *testing.T) {
	rts.reserve(t, 3, 1, 5)
	_, err := rts.Rs.Create(rts.Ctx, 3, "Bob", "Calypso", day(5), day(10))
	require.True(t, cerr.Is(err, cerr.KindConflict), "got %v", err)
	assert.ErrorIs(t, err, model.ErrOverlap)
	assert.ErrorContains(t, err, "catway 3 is reserved from")
	_, err = rts.Rs.Create(rts.Ctx, 3, "Bob", "Calypso", day(0), day(1))
	assert.ErrorIs(t, err, model.ErrOverlap)
	list, err := rts.Rs.ListByCatway(rts.Ctx, 3)
	require.NoError(t, err)
	assert.Len(t, list, 1, "failed checks must not persist anything")
}

func (rts *ReservationsTestSuite) TestDisjoint(t *testing.T) {
	rts.reserve(t, 3, 1, 5)
	res, err := rts.Rs.Create(rts.Ctx, 3, "Bob", "Calypso", day(6), day(10))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.Equal(t, 3, res.CatwayNumber)
	assert.Equal(t, day(6), res.StartDate)
}

func (rts *ReservationsTestSuite) TestOtherCatway(t *testing.T) {
	rts.reserve(t, 3, 1, 5)
	rts.reserve(t, 4, 1, 5)
}

func (rts *ReservationsTestSuite) TestInvalid(t *testing.T) {
	for name, args := range map[string]struct {
		client, boat string
		start, end   time.Time
	}{
		"reversed":      {"Bob", "Calypso", day(5), day(1)},
		"missing boat":  {"Bob", "", day(1), day(5)},
		"missing name":  {"", "Calypso", day(1), day(5)},
		"missing dates": {"Bob", "Calypso", time.Time{}, time.Time{}},
	} {
		_, err := rts.Rs.Create(
			rts.Ctx, 3, args.client, args.boat, args.start, args.end,
		)
		assert.True(t, cerr.Is(err, cerr.KindInvalid), "%s: %v", name, err)
	}
}

func (rts *ReservationsTestSuite) TestUpdateSelf(t *testing.T) {
	res := rts.reserve(t, 3, 1, 5)
	rts.reserve(t, 3, 10, 12)
	got, err := rts.Rs.Update(
		rts.Ctx, 3, res.ID, model.ReservationUpdate{
			StartDate: model.Some(day(1)),
			EndDate:   model.Some(day(5)),
		},
	)
	require.NoError(t, err, "own unchanged range")
	assert.Equal(t, res.Range(), got.Range())

	got, err = rts.Rs.Update(
		rts.Ctx, 3, res.ID, model.ReservationUpdate{
			ClientName: model.Some("Carol"),
		},
	)
	require.NoError(t, err, "no dates at all")
	assert.Equal(t, "Carol", got.ClientName)
	assert.Equal(t, "Nautilus", got.BoatName)

	got, err = rts.Rs.Update(
		rts.Ctx, reservationsuc.AnyCatway, res.ID, model.ReservationUpdate{
			EndDate: model.Some(day(9)),
		},
	)
	require.NoError(t, err, "growing into the free gap")
	assert.Equal(t, day(9), got.EndDate)
}

func (rts *ReservationsTestSuite) TestUpdateMergedRange(t *testing.T) {
	res := rts.reserve(t, 3, 1, 5)
	rts.reserve(t, 3, 10, 12)
	_, err := rts.Rs.Update(
		rts.Ctx, 3, res.ID, model.ReservationUpdate{
			EndDate: model.Some(day(10)),
		},
	)
	assert.ErrorIs(t, err, model.ErrOverlap, "only the end is supplied")
	_, err = rts.Rs.Update(
		rts.Ctx, 3, res.ID, model.ReservationUpdate{
			StartDate: model.Some(day(6)),
		},
	)
	assert.True(t, cerr.Is(err, cerr.KindInvalid), "start after end")
	_, err = rts.Rs.Update(
		rts.Ctx, 3, res.ID, model.ReservationUpdate{
			BoatName: model.Some(""),
		},
	)
	assert.ErrorIs(t, err, model.ErrMissingField)
	_, err = rts.Rs.Update(
		rts.Ctx, 3, uuid.New(), model.ReservationUpdate{},
	)
	assert.True(t, cerr.Is(err, cerr.KindNotFound))

	got, err := rts.Rs.Get(rts.Ctx, 3, res.ID)
	require.NoError(t, err)
	assert.Equal(t, *res, *got, "failed updates must not change anything")
}

func (rts *ReservationsTestSuite) TestDeleteRecreate(t *testing.T) {
	res := rts.reserve(t, 3, 1, 5)
	_, err := rts.Rs.Create(rts.Ctx, 3, "Bob", "Calypso", day(3), day(8))
	require.ErrorIs(t, err, model.ErrOverlap)
	require.NoError(t, rts.Rs.Delete(rts.Ctx, 3, res.ID))
	rts.reserve(t, 3, 3, 8)
	err = rts.Rs.Delete(rts.Ctx, 3, res.ID)
	assert.True(t, cerr.Is(err, cerr.KindNotFound), "deleted twice")
}

func (rts *ReservationsTestSuite) TestCatwayScoping(t *testing.T) {
	res := rts.reserve(t, 3, 1, 5)
	_, err := rts.Rs.Get(rts.Ctx, 4, res.ID)
	assert.ErrorIs(t, err, model.ErrReservationNotFound)
	err = rts.Rs.Delete(rts.Ctx, 4, res.ID)
	assert.True(t, cerr.Is(err, cerr.KindNotFound))
	_, err = rts.Rs.Update(rts.Ctx, 4, res.ID, model.ReservationUpdate{})
	assert.True(t, cerr.Is(err, cerr.KindNotFound))
	got, err := rts.Rs.Get(rts.Ctx, reservationsuc.AnyCatway, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
}

func (rts *ReservationsTestSuite) TestListing(t *testing.T) {
	list, err := rts.Rs.ListByCatway(rts.Ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, list)
	rts.reserve(t, 3, 10, 12)
	rts.reserve(t, 4, 1, 2)
	rts.reserve(t, 3, 1, 5)
	list, err = rts.Rs.ListByCatway(rts.Ctx, 3)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, day(1), list[0].StartDate)
	list, err = rts.Rs.ListByCatway(rts.Ctx, 3)
	require.NoError(t, err)
	assert.Len(t, list, 2, "listing is restartable")
	all, err := rts.Rs.List(rts.Ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func (rts *ReservationsTestSuite) TestConcurrentCreate(t *testing.T) {
	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = rts.Rs.Create(
				rts.Ctx, 3, "Client", "Boat", day(1+i%3), day(5+i%3),
			)
		}(i)
	}
	wg.Wait()
	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, model.ErrOverlap)
	}
	assert.Equal(t, 1, ok, "exactly one creation must win")
}

func (rts *ReservationsTestSuite) TestSerializationFailure(t *testing.T) {
	rts.Store.FailNextSerializableCommit(errors.New("could not serialize"))
	_, err := rts.Rs.Create(rts.Ctx, 3, "Bob", "Calypso", day(1), day(5))
	require.True(t, cerr.Is(err, cerr.KindConflict), "got %v", err)
	assert.ErrorIs(t, err, model.ErrOverlap)
	assert.ErrorIs(t, err, model.ErrConcurrentUpdate)
	list, err := rts.Rs.ListByCatway(rts.Ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, list, "rolled back")
	rts.reserve(t, 3, 1, 5)
}

func (rts *ReservationsTestSuite) TestRenumberedCatway(t *testing.T) {
	res := rts.reserve(t, 3, 1, 5)
	c, err := rts.Cw.GetByNumber(rts.Ctx, 3)
	require.NoError(t, err)
	_, err = rts.Cw.Update(rts.Ctx, c.ID, model.CatwayUpdate{
		Number: model.Some(30),
	})
	require.NoError(t, err)
	got, err := rts.Rs.Get(rts.Ctx, 30, res.ID)
	require.NoError(t, err, "reservations follow their catway")
	assert.Equal(t, 30, got.CatwayNumber)
	_, err = rts.Rs.Create(rts.Ctx, 30, "Bob", "Calypso", day(2), day(3))
	assert.ErrorIs(t, err, model.ErrOverlap)
}

func (rts *ReservationsTestSuite) TestCatwayInUse(t *testing.T) {
	res := rts.reserve(t, 3, 1, 5)
	c, err := rts.Cw.GetByNumber(rts.Ctx, 3)
	require.NoError(t, err)
	err = rts.Cw.Delete(rts.Ctx, c.ID)
	require.True(t, cerr.Is(err, cerr.KindConflict), "got %v", err)
	assert.ErrorIs(t, err, model.ErrCatwayInUse)
	require.NoError(t, rts.Rs.Delete(rts.Ctx, 3, res.ID))
	require.NoError(t, rts.Cw.Delete(rts.Ctx, c.ID))
}

// TestStoreAcceptsOverlaps ensures that overlap conflicts of other
// tests are detected by the use case and not by the in-memory store.
func (rts *ReservationsTestSuite) TestStoreAcceptsOverlaps(t *testing.T) {
	rr := memrepo.NewReservations()
	err := rts.Store.Pool().Conn(rts.Ctx, func(
		ctx context.Context, c repo.Conn,
	) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			for i := 0; i < 2; i++ {
				r := reservation(3, 1, 5)
				if _, err := rr.Tx(tx).Create(ctx, &r); err != nil {
					return err
				}
			}
			return nil
		})
	})
	require.NoError(t, err)
	list, err := rts.Rs.ListByCatway(rts.Ctx, 3)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func reservation(n, start, end int) model.Reservation {
	return model.Reservation{
		CatwayNumber: n, ClientName: "Client", BoatName: "Boat",
		StartDate: day(start), EndDate: day(end),
	}
}

func TestMaxLength(t *testing.T) {
	rts := newSuite(t, reservationsuc.WithMaxLength(72*time.Hour))
	rts.reserve(t, 3, 1, 4)
	_, err := rts.Rs.Create(rts.Ctx, 3, "Bob", "Calypso", day(5), day(9))
	assert.True(t, cerr.Is(err, cerr.KindInvalid), "got %v", err)
	assert.ErrorIs(t, err, model.ErrInvalidRange)

	_, err = reservationsuc.New(
		rts.Store.Pool(), memrepo.NewCatways(), memrepo.NewReservations(),
		reservationsuc.WithMaxLength(time.Hour),
		reservationsuc.WithMaxLength(time.Hour),
	)
	assert.Error(t, err, "duplicate option")
	_, err = reservationsuc.New(
		rts.Store.Pool(), memrepo.NewCatways(), memrepo.NewReservations(),
		reservationsuc.WithMaxLength(0),
	)
	assert.Error(t, err, "non-positive length")
}

func TestUpdateIsLogged(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)
	var buf bytes.Buffer
	require.NoError(t, log.Setup(&buf, "info", "json"))
	rts := newSuite(t)
	res := rts.reserve(t, 3, 1, 5)
	buf.Reset()
	_, err := rts.Rs.Update(rts.Ctx, 3, res.ID, model.ReservationUpdate{
		EndDate: model.Some(day(7)),
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `"msg":"reservation is updated"`)
	assert.Contains(t, out, `"id":"`+res.ID.String()+`"`)
	assert.Contains(t, out, `"catway":3`)
}
