// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SemVer represents a released semantic version, consisting of three
// components, namely the major, minor, and patch versions. Both the
// configuration file format and the database schema are versioned
// with SemVer values. A major version change is backward-incompatible,
// a minor version change adds features which older readers may ignore,
// and a patch version change is invisible to the readers.
type SemVer [3]uint

// UnmarshalText deserializes text byte slice as a string consisting of
// one to three dot-separated numbers and fills the sv SemVer instance.
// Missing minor or patch components are taken as zero, so "1" and
// "1.0" both stand for 1.0.0. In case of errors, sv is left unchanged.
func (sv *SemVer) UnmarshalText(text []byte) error {
	p := strings.Split(string(text), ".")
	if len(p) > 3 {
		return fmt.Errorf("the %q has wrong number of components", text)
	}
	var v SemVer
	for i, c := range p {
		n, err := strconv.ParseUint(c, 10, 32)
		if err != nil {
			return fmt.Errorf(
				"the %q component of %q is not a number", c, text,
			)
		}
		v[i] = uint(n)
	}
	*sv = v
	return nil
}

// Marshal serializes sv semantic version as its string representation.
// This is required for YAML serialization.
func (sv *SemVer) Marshal() string {
	return sv.String()
}

// MarshalText implements encoding.TextMarshaler interface and
// serializes `sv` semantic version as its string representation.
func (sv *SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

// String returns the sv semantic version as a dot-separated string
// like major.minor.patch.
func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}

// Supports reports if a reader of the sv version can read data which
// is written with the v version. That is, their major versions must be
// equal and v may not have a newer minor version. Patch versions are
// ignored.
func (sv SemVer) Supports(v SemVer) bool {
	return sv[0] == v[0] && v[1] <= sv[1]
}
