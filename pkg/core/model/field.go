// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// Field is an optional value of a partial update. A Field which is not
// Set was omitted by the caller, while a Set Field may still hold the
// zero value of T (e.g., an empty string which was supplied explicitly).
type Field[T any] struct {
	Value T
	Set   bool
}

// Some returns a Set Field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Or returns the field value if it is Set and returns def otherwise.
func (f Field[T]) Or(def T) T {
	if f.Set {
		return f.Value
	}
	return def
}
