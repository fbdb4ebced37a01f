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
	"context"
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/talsmasoftware/miscutils/internal/boundedlist"
	"github.com/talsmasoftware/miscutils/internal/tail"
)

func rangeStrings(from, to int) []string {
	var res []string
	for i := from; i <= to; i++ {
		res = append(res, strconv.Itoa(i))
	}
	return res
}

func mustLast[T any](t *testing.T, maxSize int) *LastCollector[T] {
	t.Helper()
	c, err := Last[T](maxSize)
	if err != nil {
		t.Fatalf("Last(%d) failed unexpectedly: %v", maxSize, err)
	}
	return c
}

func TestLastInvalidMaxSize(t *testing.T) {
	for _, maxSize := range []int{0, -1, -10} {
		t.Run(strconv.Itoa(maxSize), func(t *testing.T) {
			c, err := Last[string](maxSize)
			if !errors.Is(err, tail.ErrInvalidArgument) {
				t.Errorf("Last(%d) = error %v, want %v", maxSize, err, tail.ErrInvalidArgument)
			}
			if c != nil {
				t.Errorf("Last(%d) = %v, want nil", maxSize, c)
			}
		})
	}
}

func TestLastCollect(t *testing.T) {
	tests := []struct {
		desc    string
		maxSize int
		input   []string
		want    []string
	}{
		{desc: "last_2_of_10", maxSize: 2, input: rangeStrings(1, 10), want: []string{"9", "10"}},
		{desc: "last_10_of_2", maxSize: 10, input: []string{"1", "2"}, want: []string{"1", "2"}},
		{desc: "last_10_of_10", maxSize: 10, input: rangeStrings(1, 10), want: rangeStrings(1, 10)},
		{desc: "empty", maxSize: 3, want: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			c := mustLast[string](t, tc.maxSize)

			got := Collect(slices.Values(tc.input), c)
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Collect(%v) returned diff (-want +got):\n%s", tc.input, diff)
			}

			got = CollectSlice(tc.input, c)
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("CollectSlice(%v) returned diff (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestLastMerge(t *testing.T) {
	tests := []struct {
		desc  string
		left  []string
		right []string
		want  []string
	}{
		{
			desc:  "right_is_full",
			left:  rangeStrings(1, 10),
			right: rangeStrings(11, 20),
			want:  rangeStrings(11, 20),
		},
		{
			desc:  "right_has_some_space",
			left:  rangeStrings(1, 10),
			right: rangeStrings(11, 15),
			want:  rangeStrings(6, 15),
		},
		{
			desc:  "both_fit",
			left:  rangeStrings(1, 4),
			right: rangeStrings(5, 10),
			want:  rangeStrings(1, 10),
		},
		{
			desc: "both_empty",
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			c := mustLast[string](t, 10)

			left := CollectSlice(tc.left, collectorAcc[string]{c})
			right := CollectSlice(tc.right, collectorAcc[string]{c})

			got := c.Finish(c.Merge(left, right))
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Merge(%v, %v) returned diff (-want +got):\n%s", tc.left, tc.right, diff)
			}
		})
	}
}

// collectorAcc exposes the raw accumulator of a LastCollector as its result.
type collectorAcc[T any] struct {
	*LastCollector[T]
}

func (c collectorAcc[T]) Finish(acc []T) []T {
	return acc
}

func TestLastMatchesBoundedList(t *testing.T) {
	input := rangeStrings(1, 37)

	for maxSize := 1; maxSize <= 40; maxSize++ {
		l, err := boundedlist.New[string](maxSize)
		if err != nil {
			t.Fatalf("boundedlist.New(%d) failed unexpectedly: %v", maxSize, err)
		}
		for _, v := range input {
			l.Add(v)
		}

		got := CollectSlice(input, mustLast[string](t, maxSize))
		if diff := cmp.Diff(l.All(), got); diff != "" {
			t.Errorf("CollectSlice() with max size %d returned diff (-list +collector):\n%s", maxSize, diff)
		}
	}
}

func TestLastMergeAnySplit(t *testing.T) {
	input := rangeStrings(1, 25)

	for _, maxSize := range []int{1, 3, 10, 25, 30} {
		c := mustLast[string](t, maxSize)
		want := CollectSlice(input, c)

		for split := 0; split <= len(input); split++ {
			left := CollectSlice(input[:split], collectorAcc[string]{c})
			right := CollectSlice(input[split:], collectorAcc[string]{c})

			got := c.Finish(c.Merge(left, right))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Merge() with max size %d split at %d returned diff (-want +got):\n%s", maxSize, split, diff)
			}
		}
	}
}

func TestFinishReturnsCopy(t *testing.T) {
	c := mustLast[int](t, 3)
	acc := c.Seed()
	for i := 1; i <= 4; i++ {
		acc = c.Accumulate(acc, i)
	}

	got := c.Finish(acc)
	acc[0] = 100

	if diff := cmp.Diff([]int{2, 3, 4}, got); diff != "" {
		t.Errorf("Finish() result is shared with the accumulator (-want +got):\n%s", diff)
	}
	if cap(got) != len(got) {
		t.Errorf("cap(Finish()) = %d, want %d", cap(got), len(got))
	}
}

func TestCollectPartitioned(t *testing.T) {
	input := rangeStrings(1, 100)

	tests := []struct {
		desc       string
		maxSize    int
		partitions int
	}{
		{desc: "single_partition", maxSize: 10, partitions: 1},
		{desc: "two_partitions", maxSize: 10, partitions: 2},
		{desc: "many_small_partitions", maxSize: 10, partitions: 30},
		{desc: "partition_smaller_than_max", maxSize: 40, partitions: 7},
		{desc: "more_partitions_than_items", maxSize: 5, partitions: 200},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			c := mustLast[string](t, tc.maxSize)
			want := CollectSlice(input, c)

			got, err := CollectPartitioned(context.Background(), Partition(input, tc.partitions), c)
			if err != nil {
				t.Fatalf("CollectPartitioned() failed unexpectedly: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("CollectPartitioned() returned diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollectPartitionedEmpty(t *testing.T) {
	c := mustLast[int](t, 3)

	got, err := CollectPartitioned[int](context.Background(), nil, c)
	if err != nil {
		t.Fatalf("CollectPartitioned(nil) failed unexpectedly: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("CollectPartitioned(nil) = %v, want empty", got)
	}
}

func TestCollectPartitionedCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := mustLast[int](t, 3)
	_, err := CollectPartitioned(ctx, [][]int{{1, 2}, {3, 4}}, c)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("CollectPartitioned() with canceled context = error %v, want %v", err, context.Canceled)
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		desc  string
		items []int
		n     int
		want  [][]int
	}{
		{desc: "zero", items: []int{1, 2, 3}, n: 0, want: [][]int{{1, 2, 3}}},
		{desc: "one", items: []int{1, 2, 3}, n: 1, want: [][]int{{1, 2, 3}}},
		{desc: "even", items: []int{1, 2, 3, 4}, n: 2, want: [][]int{{1, 2}, {3, 4}}},
		{desc: "uneven", items: []int{1, 2, 3, 4, 5}, n: 3, want: [][]int{{1, 2}, {3, 4}, {5}}},
		{desc: "more_parts_than_items", items: []int{1, 2}, n: 5, want: [][]int{{1}, {2}}},
		{desc: "empty", items: nil, n: 3, want: [][]int{nil}},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			got := Partition(tc.items, tc.n)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Partition(%v, %d) returned diff (-want +got):\n%s", tc.items, tc.n, diff)
			}
		})
	}
}

func TestNonNil(t *testing.T) {
	one, two, three := 1, 2, 3

	tests := []struct {
		desc  string
		items []*int
		want  []int
	}{
		{desc: "nil", items: nil, want: nil},
		{desc: "empty", items: []*int{}, want: nil},
		{desc: "filters_nil", items: []*int{&one, nil, &two, nil, &three}, want: []int{1, 2, 3}},
	}

	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			var got []int
			for v := range NonNil(tc.items) {
				got = append(got, *v)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("NonNil() returned diff (-want +got):\n%s", diff)
			}
		})
	}
}
