// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the catweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// These settings are versioned and maintained by sub-packages.
// However, the parsed and validated configurations are passed to their
// ultimate components as a series of individual params (for the
// mandatory items) and a series of functional options (for the
// optional items), so they may be validated again in the relevant
// end-component such as a UseCase instance.
package config

import (
	"fmt"
	"os"

	"github.com/momeni/catways/pkg/adapter/config/cfg1"
	"github.com/momeni/catways/pkg/adapter/config/vers"
	"github.com/momeni/catways/pkg/adapter/db/postgres"
)

// Load function loads, validates, and normalizes the configuration
// file and returns its settings as an instance of the Config struct.
// Given path must belong to a configuration file which conforms with
// the latest known configuration settings format.
// The corresponding database schema version must also match with the
// latest known database schema version.
func Load(path string) (*cfg1.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data, nil)
}

// Parse is like Load, but takes the configuration file contents from
// data and the environment variables from environ (or from the process
// environment if environ is nil).
func Parse(data []byte, environ map[string]string) (*cfg1.Config, error) {
	v, err := vers.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	if err = v.Validate(cfg1.Major, cfg1.Minor); err != nil {
		return nil, fmt.Errorf(
			"unexpected config version %s: %w",
			v.Versions.Config.String(), err,
		)
	}
	if err = v.ExpectDatabase(postgres.Version); err != nil {
		return nil, fmt.Errorf("unexpected database schema: %w", err)
	}
	c, err := cfg1.LoadWithEnv(data, environ)
	if err != nil {
		return nil, fmt.Errorf("loading cfg1.Config: %w", err)
	}
	return c, nil
}
