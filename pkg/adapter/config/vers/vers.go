// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers contains the common versions parsing which is required
// by all config versions. Two versions are tracked here, namely the
// configuration file and the database schema. Versions are read before
// the actual settings, so the settings format can be chosen (and the
// database schema compatibility can be verified) before decoding them.
package vers

import (
	"fmt"

	"github.com/momeni/catways/pkg/core/cerr"
	"github.com/momeni/catways/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config contains the versions of the configuration file and the
// database schema. It is embedded with inline format in the config
// structs in order to indicate their versions.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions contains the configuration file and database schema versions
// which are used for detecting their relevant formats.
type Versions struct {
	Database model.SemVer `yaml:"database"`
	Config   model.SemVer `yaml:"config"`
}

// Marshalled is an alternative form of Config struct which replaces
// its model.SemVer inner fields by their string representation, so
// they are written as "1.0.0" instead of a YAML sequence of numbers.
type Marshalled struct {
	Versions struct {
		Database string `yaml:"database"`
		Config   string `yaml:"config"`
	} `yaml:"versions"`
}

// Marshal creates and returns a Marshalled instance representing the vc
// Config instance. It may be serialized instead of vc to YAML format.
func (vc *Config) Marshal() *Marshalled {
	m := &Marshalled{}
	m.Versions.Database = vc.Versions.Database.Marshal()
	m.Versions.Config = vc.Versions.Config.Marshal()
	return m
}

// Load deserializes the data byte slice into a new instance of Config
// struct. Extra fields in data are ignored, so the same document may
// be decoded again by a version specific config package afterwards.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate returns an error if the configuration settings version which
// is stored in the `vc` Config instance is not supported by the given
// major and minor version arguments. That is, stored major version
// must match with the major argument and the stored minor version must
// be at most equal with the given minor version (not newer than it).
func (vc *Config) Validate(major, minor uint) error {
	v := vc.Versions.Config
	if (model.SemVer{major, minor, 0}).Supports(v) {
		return nil
	}
	if v[0] != major {
		return fmt.Errorf("incompatible major version: %d", v[0])
	}
	return fmt.Errorf("unsupported minor version: %d", v[1])
}

// ExpectDatabase returns a *cerr.MismatchingSemVerError if the database
// schema version which is recorded in vc differs from the sv version
// which is supported by this binary. Schema versions are compared
// exactly because tables are created by one schema release alone.
func (vc *Config) ExpectDatabase(sv model.SemVer) error {
	if actual := vc.Versions.Database; actual != sv {
		return &cerr.MismatchingSemVerError{sv, actual}
	}
	return nil
}
