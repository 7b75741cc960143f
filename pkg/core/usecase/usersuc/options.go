// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the users use case.
type Option func(uc *UseCase) error

// WithMinPasswordLength option configures a users UseCase instance
// in order to reject passwords which are shorter than n bytes.
// The DefaultMinPasswordLength is used if this option is not given.
func WithMinPasswordLength(n int) Option {
	return func(uc *UseCase) error {
		if n <= 0 {
			return fmt.Errorf("min password length (%d) is not positive", n)
		}
		if uc.minPasswordLength != 0 {
			return errors.New("min password length is already configured")
		}
		uc.minPasswordLength = n
		return nil
	}
}
