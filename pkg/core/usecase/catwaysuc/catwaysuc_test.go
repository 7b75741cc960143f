// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package catwaysuc_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/catways/internal/test/memrepo"
	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/log"
	"github.com/momeni/catways/pkg/core/model"
	"github.com/momeni/catways/pkg/core/usecase/catwaysuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) (*catwaysuc.UseCase, *memrepo.Store) {
	s := memrepo.New()
	uc, err := catwaysuc.New(
		s.Pool(), memrepo.NewCatways(), memrepo.NewReservations(),
	)
	require.NoError(t, err, "catwaysuc.New")
	return uc, s
}

func TestNewRequiresRepositories(t *testing.T) {
	_, err := catwaysuc.New(nil, memrepo.NewCatways(), nil)
	assert.Error(t, err)
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	r := require.New(t)
	uc, _ := newUseCase(t)
	c, err := uc.Create(ctx, 7, model.BerthTypeShort, "bon état")
	r.NoError(err)
	r.NotEqual(uuid.Nil, c.ID)
	r.Equal(7, c.Number)

	got, err := uc.Get(ctx, c.ID)
	r.NoError(err)
	r.Equal(*c, *got)
	got, err = uc.GetByNumber(ctx, 7)
	r.NoError(err)
	r.Equal(c.ID, got.ID)

	_, err = uc.Get(ctx, uuid.New())
	r.True(cerr.Is(err, cerr.KindNotFound), "got %v", err)
	_, err = uc.GetByNumber(ctx, 8)
	r.ErrorIs(err, model.ErrCatwayNotFound)
}

func TestCreateRejectsInvalidCatways(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)
	for name, c := range map[string]model.Catway{
		"zero number":   {Number: 0, Type: model.BerthTypeLong, State: "ok"},
		"missing type":  {Number: 1, State: "ok"},
		"missing state": {Number: 1, Type: model.BerthTypeLong},
	} {
		_, err := uc.Create(ctx, c.Number, c.Type, c.State)
		assert.True(t, cerr.Is(err, cerr.KindInvalid), "%s: %v", name, err)
	}
}

func TestDuplicateNumbers(t *testing.T) {
	ctx := context.Background()
	r := require.New(t)
	uc, _ := newUseCase(t)
	_, err := uc.Create(ctx, 1, model.BerthTypeShort, "ok")
	r.NoError(err)
	second, err := uc.Create(ctx, 2, model.BerthTypeLong, "ok")
	r.NoError(err)

	_, err = uc.Create(ctx, 1, model.BerthTypeLong, "ok")
	r.True(cerr.Is(err, cerr.KindConflict), "got %v", err)
	r.ErrorIs(err, model.ErrDuplicateNumber)

	_, err = uc.Update(ctx, second.ID, model.CatwayUpdate{
		Number: model.Some(1),
	})
	r.ErrorIs(err, model.ErrDuplicateNumber, "renumbering to a used one")

	got, err := uc.Update(ctx, second.ID, model.CatwayUpdate{
		Number: model.Some(2),
		State:  model.Some("en travaux"),
	})
	r.NoError(err, "keeping its own number")
	r.Equal("en travaux", got.State)
	r.Equal(model.BerthTypeLong, got.Type)

	list, err := uc.List(ctx)
	r.NoError(err)
	r.Len(list, 2)
	r.Equal(1, list[0].Number)
	r.Equal(2, list[1].Number)
}

func TestConcurrentDuplicateCreations(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)
	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Create(ctx, 5, model.BerthTypeShort, "ok")
		}(i)
	}
	wg.Wait()
	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, model.ErrDuplicateNumber)
		}
	}
	assert.Equal(t, 1, ok)
}

func TestUpdateValidation(t *testing.T) {
	ctx := context.Background()
	r := require.New(t)
	uc, _ := newUseCase(t)
	c, err := uc.Create(ctx, 1, model.BerthTypeShort, "ok")
	r.NoError(err)
	_, err = uc.Update(ctx, c.ID, model.CatwayUpdate{State: model.Some("")})
	r.True(cerr.Is(err, cerr.KindInvalid), "got %v", err)
	_, err = uc.Update(ctx, uuid.New(), model.CatwayUpdate{})
	r.True(cerr.Is(err, cerr.KindNotFound), "got %v", err)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	r := require.New(t)
	uc, s := newUseCase(t)
	c, err := uc.Create(ctx, 1, model.BerthTypeShort, "ok")
	r.NoError(err)

	s.FailNextSerializableCommit(errors.New("could not serialize"))
	err = uc.Delete(ctx, c.ID)
	r.ErrorIs(err, model.ErrConcurrentUpdate)
	_, err = uc.Get(ctx, c.ID)
	r.NoError(err, "failed deletion is rolled back")

	r.NoError(uc.Delete(ctx, c.ID))
	err = uc.Delete(ctx, c.ID)
	r.True(cerr.Is(err, cerr.KindNotFound), "got %v", err)
}

func TestUpdateIsLogged(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)
	var buf bytes.Buffer
	require.NoError(t, log.Setup(&buf, "info", "json"))
	ctx := context.Background()
	uc, _ := newUseCase(t)
	c, err := uc.Create(ctx, 7, model.BerthTypeShort, "bon état")
	require.NoError(t, err)
	buf.Reset()
	_, err = uc.Update(ctx, c.ID, model.CatwayUpdate{Number: model.Some(17)})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `"msg":"catway is updated"`)
	assert.Contains(t, out, `"number":17`)
	assert.Contains(t, out, `"previous-number":7`)
}
