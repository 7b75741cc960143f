// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// Models of this package are plain structs. The adapter layer keeps
// its own ORM-specific structs (see the gCatway struct in the
// pkg/adapter/db/postgres/catwaysrp package) and converts them to and
// from these models.
package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Catway models a berth (or mooring slot) of the harbor.
// Each catway is identified by a unique positive Number which is also
// used by reservations in order to refer to their berth. The ID is an
// opaque identifier which stays fixed even if Number is renamed.
type Catway struct {
	ID     uuid.UUID `json:"id"`
	Number int       `json:"catwayNumber"`
	Type   BerthType `json:"catwayType"`
	State  string    `json:"catwayState"`
}

// Validate checks the catway fields, ignoring its ID, and returns an
// error wrapping ErrInvalidCatway for the first invalid field.
func (c *Catway) Validate() error {
	switch {
	case c.Number <= 0:
		return fmt.Errorf("%w: number must be positive", ErrInvalidCatway)
	case c.State == "":
		return fmt.Errorf("%w: state is required", ErrInvalidCatway)
	}
	if err := c.Type.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCatway, err)
	}
	return nil
}

// CatwayUpdate lists the catway fields which may be changed by an
// update operation. Omitted fields keep their stored values.
type CatwayUpdate struct {
	Number Field[int]
	Type   Field[BerthType]
	State  Field[string]
}

// Apply returns a copy of c having the supplied fields of u.
func (u CatwayUpdate) Apply(c Catway) Catway {
	c.Number = u.Number.Or(c.Number)
	c.Type = u.Type.Or(c.Type)
	c.State = u.State.Or(c.State)
	return c
}

// BerthType specifies the berth type enum, accepting short and long
// berths. Although this enum is numeric, it is (de)serialized as a
// string for readability in the adapter layer.
type BerthType int

// Valid values for the BerthType enum.
const (
	BerthTypeInvalid BerthType = iota // zero value is invalid

	BerthTypeShort // short berth for small boats
	BerthTypeLong  // long berth for larger boats
)

// BerthTypeError indicates an invalid berth type which is kept as an
// integer. ParseBerthType returns ErrUnknownBerthType instead because
// its caller knows about the rejected string.
type BerthTypeError int

// Error implements the error interface, returning a string
// representation of the BerthTypeError.
func (e BerthTypeError) Error() string {
	return fmt.Sprintf("invalid berth type: %d", e)
}

// Validate returns nil if BerthType value is valid. For invalid
// values, an instance of the BerthTypeError will be returned.
func (b BerthType) Validate() error {
	switch b {
	case BerthTypeShort, BerthTypeLong:
		return nil
	default:
		return BerthTypeError(b)
	}
}

// String converts the BerthType enum to a string, helping to serialize
// it for transmission to web clients. Invalid berth type causes a panic.
func (b BerthType) String() string {
	switch b {
	case BerthTypeShort:
		return "short"
	case BerthTypeLong:
		return "long"
	default:
		panic(BerthTypeError(b))
	}
}

// MarshalText implements encoding.TextMarshaler so a BerthType is
// encoded as its string form in JSON documents.
func (b BerthType) MarshalText() ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using the
// ParseBerthType function.
func (b *BerthType) UnmarshalText(text []byte) error {
	bt, err := ParseBerthType(string(text))
	if err != nil {
		return fmt.Errorf("%q: %w", text, err)
	}
	*b = bt
	return nil
}

// ParseBerthType parses the given string and returns a BerthType,
// helping to deserialize it when reading a REST API request.
// For invalid strings, BerthTypeInvalid and ErrUnknownBerthType
// will be returned.
func ParseBerthType(b string) (BerthType, error) {
	switch b {
	case "short":
		return BerthTypeShort, nil
	case "long":
		return BerthTypeLong, nil
	default:
		return BerthTypeInvalid, ErrUnknownBerthType
	}
}
