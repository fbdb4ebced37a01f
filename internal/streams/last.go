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


package streams

import (
	"fmt"

	"github.com/talsmasoftware/miscutils/internal/tail"
	"golang.org/x/exp/slices"
)

// LastCollector collects the last maxSize values of a sequence, oldest first.
// Its accumulator is a plain slice with capacity maxSize.
type LastCollector[T any] struct {
	maxSize int
}

// Last returns a collector for the last [maxSize] values of a sequence, or all
// values if there are at most [maxSize] of them.
func Last[T any](maxSize int) (*LastCollector[T], error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("maximum size must be a positive number, got %d: %w", maxSize, tail.ErrInvalidArgument)
	}
	return &LastCollector[T]{maxSize: maxSize}, nil
}

// MaxSize returns the maximum number of collected values.
func (c *LastCollector[T]) MaxSize() int {
	return c.maxSize
}

// Seed returns an empty accumulator with room for MaxSize() values.
func (c *LastCollector[T]) Seed() []T {
	return make([]T, 0, c.maxSize)
}

// Accumulate appends value to acc, dropping the oldest value once acc is full.
func (c *LastCollector[T]) Accumulate(acc []T, value T) []T {
	return tail.Append(acc, c.maxSize, value)
}

// Merge returns the last MaxSize() values of left followed by right. When
// right is already full it is returned as is and left is discarded.
func (c *LastCollector[T]) Merge(left, right []T) []T {
	if len(right) >= c.maxSize {
		return right
	}
	return tail.Concat(c.maxSize, left, right)
}

// Finish returns a copy of acc trimmed to its length.
func (c *LastCollector[T]) Finish(acc []T) []T {
	return slices.Clip(slices.Clone(acc))
}
