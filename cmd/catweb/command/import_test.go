// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reservations.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadReservations(t *testing.T) {
	r := require.New(t)
	path := writeFile(t, `[
  {"catwayNumber": 2, "clientName": "Camille Dubois",
   "boatName": "Le Sillage",
   "startDate": "2024-07-01", "endDate": "2024-07-05T12:00:00+02:00"}
]`)
	list, err := readReservations(path)
	r.NoError(err)
	r.Len(list, 1)
	got := list[0]
	r.Equal(2, got.CatwayNumber)
	r.Equal("Camille Dubois", got.ClientName)
	r.Equal("Le Sillage", got.BoatName)
	r.True(
		got.StartDate.Equal(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)),
		"a date without time is midnight UTC: %v", got.StartDate,
	)
	r.True(
		got.EndDate.Equal(time.Date(2024, time.July, 5, 10, 0, 0, 0, time.UTC)),
		"got %v", got.EndDate,
	)

	list, err = readReservations("")
	r.NoError(err)
	r.Empty(list)
}

func TestReadReservationsRejectsDates(t *testing.T) {
	for _, date := range []string{`"01/07/2024"`, `"2024-13-01"`, `20240701`} {
		path := writeFile(t, `[{"catwayNumber": 1, "startDate": `+date+`}]`)
		_, err := readReservations(path)
		assert.Error(t, err, "date %s", date)
	}
	_, err := readReservations(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
