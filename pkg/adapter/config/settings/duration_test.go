// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/momeni/catways/pkg/adapter/config/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleDuration_Marshal() {
	for _, s := range []string{"30d", "36h", "2h30m", "90s", "0s"} {
		var d settings.Duration
		if err := d.UnmarshalText([]byte(s)); err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(*d.Marshal())
	}
	// Output:
	// 30d
	// 36h
	// 2h30m
	// 1m30s
	// 0s
}

func TestUnmarshalDays(t *testing.T) {
	var d settings.Duration
	require.NoError(t, d.UnmarshalText([]byte("7d")))
	assert.Equal(t, 7*24*time.Hour, time.Duration(d))

	for _, bad := range []string{"d", "-1d", "1.5d", "week"} {
		d = settings.Duration(time.Minute)
		assert.Error(t, d.UnmarshalText([]byte(bad)), bad)
		assert.Equal(t, time.Minute, time.Duration(d), "kept on %q", bad)
	}
}

func TestVerifyRange(t *testing.T) {
	minb, maxb := settings.Duration(time.Hour), settings.Duration(settings.Day)
	v := settings.Duration(2 * settings.Day)
	p := &v
	err := settings.VerifyRange(&p, &minb, &maxb)
	require.NotNil(t, err)
	assert.False(t, err.LessThanMin)
	assert.Equal(t, maxb, *p, "value is clamped to max")

	var nilp *settings.Duration
	assert.Nil(t, settings.VerifyRange(&nilp, &minb, &maxb))
	assert.NotNil(t, settings.VerifyRange(&nilp, &maxb, &minb).InvalidRange)
}

func TestVerifyPositive(t *testing.T) {
	zero, week := settings.Duration(0), settings.Duration(7*settings.Day)
	assert.NoError(t, settings.VerifyPositive[settings.Duration]("d", nil))
	assert.NoError(t, settings.VerifyPositive("d", &week))
	assert.EqualError(
		t, settings.VerifyPositive("max length", &zero),
		"max length is not positive: 0s",
	)
	n := -2
	assert.Error(t, settings.VerifyPositive("length", &n))
}
