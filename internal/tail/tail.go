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


// Package tail implements the "last n of a concatenation" primitive shared by
// the bounded list and the last-n stream collector.
//
// None of the functions in this package are safe for concurrent use on the
// same slice.
package tail

import (
	"errors"

	"golang.org/x/exp/slices"
)

// ErrInvalidArgument is returned (wrapped) by constructors that reject a
// non-positive capacity or maximum size.
var ErrInvalidArgument = errors.New("invalid argument")

// RotateLeft rotates s in place so that s[k] becomes s[0]. k is taken modulo
// len(s), a negative k rotates to the right.
func RotateLeft[T any](s []T, k int) {
	n := len(s)
	if n == 0 {
		return
	}
	k %= n
	if k < 0 {
		k += n
	}
	if k == 0 {
		return
	}
	slices.Reverse(s[:k])
	slices.Reverse(s[k:])
	slices.Reverse(s)
}

// Append returns the last n elements of dst followed by src, in order. The
// result reuses dst's backing array when it can, callers must use the
// returned slice in place of dst.
func Append[T any](dst []T, n int, src ...T) []T {
	if n <= 0 {
		return dst[:0]
	}

	overflow := len(dst) + len(src) - n
	switch {
	case overflow <= 0:
		return append(dst, src...)
	case len(src) >= n:
		// src alone fills the budget, nothing of dst survives.
		return append(dst[:0], src[len(src)-n:]...)
	}

	// Evicted elements are rotated to the end of dst and overwritten by src.
	RotateLeft(dst, overflow)
	return append(dst[:len(dst)-overflow], src...)
}

// Concat returns the last n elements of a followed by b in a newly allocated
// slice with capacity n. Neither a nor b is modified.
func Concat[T any](n int, a, b []T) []T {
	if n <= 0 {
		return nil
	}

	res := make([]T, 0, n)
	if len(b) >= n {
		return append(res, b[len(b)-n:]...)
	}
	if keep := n - len(b); len(a) > keep {
		a = a[len(a)-keep:]
	}
	res = append(res, a...)
	return append(res, b...)
}

// Last returns the last n elements of s as a subslice of s.
func Last[T any](s []T, n int) []T {
	if n <= 0 {
		return s[:0]
	}
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
