// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram hashes the passwords of the catweb database roles
// (i.e., the admin and catweb roles, plus their configured suffix) in
// the SCRAM format which PostgreSQL accepts in ALTER ROLE statements.
// The `db init-dev` and `db init-prod` commands renew both passwords
// and send only these hashes to the server, so plaintext passwords do
// not appear in the server logs.
//
// The mechanism is selected by the database.auth-method setting, see
// ForAuthMethod. Hashes are computed by the github.com/xdg-go/scram
// module.
package scram

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/xdg-go/scram"
)

// MinIterations is the least PBKDF2 iterations count which is accepted
// by Hash. The schema repository uses more iterations as RFC 7677
// recommends.
const MinIterations = 4096

// Mechanism hashes passwords using one SCRAM variant. It implements the
// github.com/momeni/catways/pkg/core/scram.Hasher interface.
type Mechanism struct {
	gen     scram.HashGeneratorFcn
	saltLen int // bytes, equal to the digest length
	name    string
}

var methods = map[string]func() *Mechanism{
	"scram-sha-1":   SHA1,
	"scram-sha-256": SHA256,
}

// ForAuthMethod returns the Mechanism of the given database.auth-method
// configuration value, namely scram-sha-1 or scram-sha-256.
func ForAuthMethod(method string) (*Mechanism, error) {
	newMechanism, ok := methods[method]
	if !ok {
		return nil, fmt.Errorf(
			"unsupported database authentication method: %q", method,
		)
	}
	return newMechanism(), nil
}

// SHA1 returns the SCRAM-SHA-1 mechanism.
func SHA1() *Mechanism {
	return &Mechanism{gen: scram.SHA1, saltLen: 20, name: "SCRAM-SHA-1"}
}

// SHA256 returns the SCRAM-SHA-256 mechanism, which is the default
// password_encryption of PostgreSQL.
func SHA256() *Mechanism {
	return &Mechanism{gen: scram.SHA256, saltLen: 32, name: "SCRAM-SHA-256"}
}

// Name returns the mechanism name as it prefixes the hash strings.
func (m *Mechanism) Name() string {
	return m.name
}

// Hash returns the role password verifier of pass as
//
//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
//
// The salt is base64 encoded; an empty salt is replaced by a random
// one. An empty pass, a malformed salt, a pass which fails the SASLprep
// normalization, or fewer than MinIterations iterations are rejected.
func (m *Mechanism) Hash(pass, salt string, iters int) (string, error) {
	switch {
	case pass == "":
		return "", errors.New("password must be non-empty")
	case iters < MinIterations:
		return "", fmt.Errorf(
			"iters (%d) is less than %d", iters, MinIterations,
		)
	}
	if salt == "" {
		var err error
		if salt, err = randomSalt(m.saltLen); err != nil {
			return "", err
		}
	}
	raw, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decoding base64 salt: %w", err)
	}
	c, err := m.gen.NewClient("", pass, "")
	if err != nil {
		return "", fmt.Errorf("normalizing password: %w", err)
	}
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt: string(raw), Iters: iters,
	})
	enc := base64.StdEncoding.EncodeToString
	return fmt.Sprintf(
		"%s$%d:%s$%s:%s", m.name, iters, salt,
		enc(sc.StoredKey), enc(sc.ServerKey),
	), nil
}

func randomSalt(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("creating random salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
