// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reservationsuc

import (
	"errors"
	"fmt"
	"time"
)

// Option is a functional option for the reservations use case.
type Option func(uc *UseCase) error

// WithMaxLength option configures a reservations UseCase instance
// in order to reject date ranges which are longer than the given
// length. By default, reservations may be arbitrarily long.
// This option may be passed to the New() function.
func WithMaxLength(length time.Duration) Option {
	return func(uc *UseCase) error {
		if l := int64(length); l <= 0 {
			return fmt.Errorf("max length (%d) is not positive", l)
		}
		if uc.maxLength != 0 {
			return errors.New("max length is already configured")
		}
		uc.maxLength = length
		return nil
	}
}
