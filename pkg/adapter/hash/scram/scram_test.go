// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"regexp"
	"testing"

	"github.com/momeni/catways/pkg/adapter/hash/scram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashFormat(t *testing.T) {
	r := require.New(t)
	m := scram.SHA256()
	h, err := m.Hash("pass", "c2FsdA==", 4096)
	r.NoError(err)
	r.Regexp(
		regexp.MustCompile(`^SCRAM-SHA-256\$4096:c2FsdA==\$[A-Za-z0-9+/=]+:[A-Za-z0-9+/=]+$`),
		h,
	)
	h2, err := m.Hash("pass", "c2FsdA==", 4096)
	r.NoError(err)
	r.Equal(h, h2, "same salt gives the same hash")

	h3, err := m.Hash("pass", "", 4096)
	r.NoError(err)
	r.NotEqual(h, h3, "random salt")
}

func TestHashRejectsInputs(t *testing.T) {
	m := scram.SHA1()
	_, err := m.Hash("", "", 4096)
	assert.Error(t, err, "empty password")
	_, err = m.Hash("pass", "", 100)
	assert.Error(t, err, "few iterations")
	_, err = m.Hash("pass", "%%%", 4096)
	assert.Error(t, err, "malformed salt")
}

func TestForAuthMethod(t *testing.T) {
	for method, name := range map[string]string{
		"scram-sha-1":   "SCRAM-SHA-1",
		"scram-sha-256": "SCRAM-SHA-256",
	} {
		m, err := scram.ForAuthMethod(method)
		require.NoError(t, err, method)
		assert.Equal(t, name, m.Name())
		h, err := m.Hash("catweb-role-pass", "", scram.MinIterations)
		require.NoError(t, err, method)
		assert.Regexp(t, `^`+name+`\$4096:`, h)
	}
	for _, method := range []string{"", "md5", "SCRAM-SHA-256"} {
		_, err := scram.ForAuthMethod(method)
		assert.Error(t, err, "method %q", method)
	}
}
