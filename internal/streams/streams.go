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


// Package streams implements fold style collectors and the drivers that run
// them over sequences, sequentially or split into partitions.
//
// A Collector is a plain algorithm, it holds no locks and its accumulators are
// owned by exactly one goroutine at a time. Parallelism, when wanted, is
// provided by CollectPartitioned which folds every partition on its own
// goroutine and merges the partial results in partition order.
package streams

import (
	"context"
	"fmt"
	"iter"

	"golang.org/x/sync/errgroup"
)

// Collector describes a reduction of values of type T into a result of type R
// through an intermediate accumulator of type A.
type Collector[T, A, R any] interface {
	// Seed returns a fresh, empty accumulator.
	Seed() A
	// Accumulate folds value into acc and returns the updated accumulator.
	Accumulate(acc A, value T) A
	// Merge combines the accumulators of two consecutive partitions, left being
	// the earlier one. Both arguments are consumed, only the returned
	// accumulator may be used afterwards.
	Merge(left, right A) A
	// Finish converts acc into the final result. acc must not be used
	// afterwards.
	Finish(acc A) R
}

// Collect folds all values of seq through c.
func Collect[T, A, R any](seq iter.Seq[T], c Collector[T, A, R]) R {
	acc := c.Seed()
	for v := range seq {
		acc = c.Accumulate(acc, v)
	}
	return c.Finish(acc)
}

// CollectSlice folds all items through c.
func CollectSlice[T, A, R any](items []T, c Collector[T, A, R]) R {
	acc := c.Seed()
	for _, v := range items {
		acc = c.Accumulate(acc, v)
	}
	return c.Finish(acc)
}

// CollectPartitioned folds every partition concurrently and merges the partial
// accumulators left to right. parts must be consecutive, order preserving
// partitions of one logical sequence, as returned by Partition.
func CollectPartitioned[T, A, R any](ctx context.Context, parts [][]T, c Collector[T, A, R]) (R, error) {
	accs := make([]A, len(parts))

	g, ctx := errgroup.WithContext(ctx)
	for i, part := range parts {
		g.Go(func() error {
			acc := c.Seed()
			for _, v := range part {
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("partition %d: %w", i, err)
				}
				acc = c.Accumulate(acc, v)
			}
			accs[i] = acc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var zero R
		return zero, err
	}

	if len(accs) == 0 {
		return c.Finish(c.Seed()), nil
	}

	acc := accs[0]
	for _, next := range accs[1:] {
		acc = c.Merge(acc, next)
	}
	return c.Finish(acc), nil
}

// Partition splits items into at most n consecutive chunks of near equal size.
// The chunks share items' backing array. n <= 1 returns a single chunk.
func Partition[T any](items []T, n int) [][]T {
	if n <= 1 || len(items) <= 1 {
		return [][]T{items}
	}
	if n > len(items) {
		n = len(items)
	}

	parts := make([][]T, 0, n)
	size, rest := len(items)/n, len(items)%n
	for start := 0; start < len(items); {
		end := start + size
		if rest > 0 {
			end++
			rest--
		}
		parts = append(parts, items[start:end:end])
		start = end
	}
	return parts
}

// NonNil returns a sequence over the non-nil elements of items. A nil or
// empty items yields nothing.
func NonNil[T any](items []*T) iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, item := range items {
			if item == nil {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}
