//  Copyright 2024 Google LLC
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.


// Package firstlast implements comparators that sort a limited set of values
// first or last, delegating the order of all other values.
//
// For example, to sort strings case-insensitive with "Always last" at the
// end:
//
//	order, err := firstlast.Last(compareFold, "Always last")
//	...
//	slices.SortFunc(values, order)
package firstlast

import (
	"errors"

	"golang.org/x/exp/slices"
)

// ErrNilDelegate is returned when no delegate comparator is provided.
var ErrNilDelegate = errors.New("delegate comparator is nil")

// Comparator returns a negative number when a sorts before b, a positive
// number when a sorts after b and zero otherwise. It is compatible with
// slices.SortFunc.
type Comparator[T any] func(a, b T) int

// First returns a comparator sorting values first, in the order they are
// given, and all other values using delegate.
func First[T comparable](delegate Comparator[T], values ...T) (Comparator[T], error) {
	return newComparator(delegate, true, values)
}

// Last returns a comparator sorting values last, in the order they are given,
// and all other values using delegate.
func Last[T comparable](delegate Comparator[T], values ...T) (Comparator[T], error) {
	return newComparator(delegate, false, values)
}

func newComparator[T comparable](delegate Comparator[T], first bool, values []T) (Comparator[T], error) {
	if delegate == nil {
		return nil, ErrNilDelegate
	}

	// The explicit values are copied so later changes by the caller don't
	// affect the order.
	explicit := slices.Clone(values)
	outside := 1
	if first {
		outside = -1
	}

	return func(a, b T) int {
		i1 := slices.Index(explicit, a)
		i2 := slices.Index(explicit, b)

		switch {
		case i1 < 0 && i2 < 0:
			return delegate(a, b)
		case i1 < 0:
			return -outside
		case i2 < 0:
			return outside
		}
		return i1 - i2
	}, nil
}
