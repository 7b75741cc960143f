// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/momeni/catways/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.July, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	for _, tc := range []struct {
		name           string
		s1, e1, s2, e2 time.Time
		expected       bool
	}{
		{"disjoint", day(1), day(5), day(6), day(10), false},
		{"touching end", day(1), day(5), day(5), day(10), true},
		{"touching start", day(5), day(10), day(1), day(5), true},
		{"nested", day(1), day(10), day(3), day(4), true},
		{"identical", day(1), day(5), day(1), day(5), true},
		{"partial", day(1), day(5), day(4), day(8), true},
		{"single instants", day(3), day(3), day(3), day(3), true},
		{"single apart", day(3), day(3), day(4), day(4), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := model.Overlaps(tc.s1, tc.e1, tc.s2, tc.e2)
			assert.Equal(t, tc.expected, got, "overlaps(a, b)")
			got = model.Overlaps(tc.s2, tc.e2, tc.s1, tc.e1)
			assert.Equal(t, tc.expected, got, "overlaps(b, a)")
		})
	}
}

func TestOverlapsMatchesDefinition(t *testing.T) {
	base := day(1)
	for s1 := 0; s1 < 6; s1++ {
		for e1 := s1; e1 < 6; e1++ {
			for s2 := 0; s2 < 6; s2++ {
				for e2 := s2; e2 < 6; e2++ {
					a := model.DateRange{
						Start: base.AddDate(0, 0, s1),
						End:   base.AddDate(0, 0, e1),
					}
					b := model.DateRange{
						Start: base.AddDate(0, 0, s2),
						End:   base.AddDate(0, 0, e2),
					}
					expected := s1 <= e2 && e1 >= s2
					require.Equal(
						t, expected, a.Overlaps(b),
						"a=[%d,%d] b=[%d,%d]", s1, e1, s2, e2,
					)
					require.Equal(
						t, a.Overlaps(b), b.Overlaps(a),
						"symmetry a=[%d,%d] b=[%d,%d]", s1, e1, s2, e2,
					)
				}
			}
		}
	}
}

func TestOverlapsComparesInstants(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("tzdata is not available: %v", err)
	}
	// 02:00 in Paris (summer time) is midnight UTC of the same day.
	s := time.Date(2024, time.July, 5, 2, 0, 0, 0, paris)
	assert.True(t, model.Overlaps(day(1), day(5), s, day(10)))
	assert.False(
		t, model.Overlaps(day(1), day(5), s.Add(time.Second), day(10)),
	)
}

func TestDateRangeValidate(t *testing.T) {
	r := require.New(t)
	r.NoError(model.DateRange{Start: day(1), End: day(1)}.Validate())
	r.ErrorIs(
		model.DateRange{Start: day(2), End: day(1)}.Validate(),
		model.ErrInvalidRange,
	)
	r.ErrorIs(
		model.DateRange{End: day(1)}.Validate(), model.ErrMissingField,
	)
	r.ErrorIs(
		model.DateRange{Start: day(1)}.Validate(), model.ErrMissingField,
	)
}

func TestReservationUpdateApply(t *testing.T) {
	stored := model.Reservation{
		CatwayNumber: 3,
		ClientName:   "Alice",
		BoatName:     "Nautilus",
		StartDate:    day(1),
		EndDate:      day(5),
	}
	u := model.ReservationUpdate{
		EndDate:  model.Some(day(7)),
		BoatName: model.Some(""),
	}
	got := u.Apply(stored)
	assert.Equal(t, day(1), got.StartDate, "omitted start is retained")
	assert.Equal(t, day(7), got.EndDate, "supplied end is applied")
	assert.Equal(t, "Alice", got.ClientName)
	assert.Equal(t, "", got.BoatName, "supplied empty value is kept")
	assert.ErrorIs(t, got.Validate(), model.ErrMissingField)
	assert.Equal(t, day(5), stored.EndDate, "stored copy is unchanged")
}

func ExampleOverlaps() {
	start := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC)
	next := time.Date(2024, time.July, 6, 0, 0, 0, 0, time.UTC)
	later := time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC)
	fmt.Println(model.Overlaps(start, end, end, later))
	fmt.Println(model.Overlaps(start, end, next, later))
	// Output:
	// true
	// false
}
