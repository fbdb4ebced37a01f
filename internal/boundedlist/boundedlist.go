//  Copyright 2024 Google LLC
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package boundedlist implements a fixed capacity list that retains only the
// most recently added entries. Adding entries that would exceed the capacity
// discards the oldest entries first, the remaining entries keep their relative
// order.
//
// A List is not safe for concurrent use. If multiple goroutines access a List
// and at least one of them adds entries, access must be synchronized by the
// caller.
package boundedlist

import (
	"fmt"
	"iter"

	"github.com/talsmasoftware/miscutils/internal/tail"
	"golang.org/x/exp/slices"
)

// List represents a fixed capacity list.
type List[T any] struct {
	// entries holds the retained entries, oldest first. len(entries) never
	// exceeds capacity.
	entries []T
	// capacity is the maximum number of retained entries.
	capacity int
}

// New creates a new List with a given [capacity]. Initial [content] is added
// as a single batch, content exceeding the capacity is trimmed to its last
// [capacity] entries.
func New[T any](capacity int, content ...T) (*List[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("illegal maximum capacity %d: %w", capacity, tail.ErrInvalidArgument)
	}

	l := &List[T]{
		entries:  make([]T, 0, capacity),
		capacity: capacity,
	}
	l.AddAll(content...)
	return l, nil
}

// Add appends an entry to the end of the list, evicting the oldest entry if
// the list is full. It always returns true.
func (l *List[T]) Add(entry T) bool {
	return l.InsertAll(len(l.entries), entry)
}

// Insert inserts an entry at the given index. See InsertAll for how the index
// is treated when the list overflows.
func (l *List[T]) Insert(idx int, entry T) {
	l.InsertAll(idx, entry)
}

// AddAll appends entries to the end of the list. It reports whether the list
// changed, which is the case whenever entries is not empty.
func (l *List[T]) AddAll(entries ...T) bool {
	return l.InsertAll(len(l.entries), entries...)
}

// InsertAll inserts entries at the given index and reports whether the list
// changed.
//
// The index is only honored while everything fits within the capacity. Once
// entries have to be evicted the result is always the last Capacity() entries
// of the current content followed by the new entries, so the new entries end
// up at the tail regardless of idx.
//
// InsertAll panics if idx is out of range and no eviction is needed, the same
// way slices.Insert does.
func (l *List[T]) InsertAll(idx int, entries ...T) bool {
	if len(entries) == 0 {
		return false
	}

	if l.capacity-len(l.entries)-len(entries) >= 0 {
		l.entries = slices.Insert(l.entries, idx, entries...)
		return true
	}

	l.entries = tail.Append(l.entries, l.capacity, entries...)
	return true
}

// Capacity returns the maximum allowed entries in the list.
func (l *List[T]) Capacity() int {
	return l.capacity
}

// Len returns the current number of entries in the list.
func (l *List[T]) Len() int {
	return len(l.entries)
}

// Item returns the entry at the given index, 0 being the oldest entry. The
// zero value is returned for indexes out of range.
func (l *List[T]) Item(idx int) T {
	var entry T
	if idx < 0 || idx >= len(l.entries) {
		return entry
	}
	return l.entries[idx]
}

// Set replaces the entry at the given index. It panics if idx is out of range.
func (l *List[T]) Set(idx int, entry T) {
	l.entries[idx] = entry
}

// All returns a copy of all entries in the list, oldest first.
func (l *List[T]) All() []T {
	list := make([]T, len(l.entries))
	copy(list, l.entries)
	return list
}

// Values returns an iterator over the index and entry pairs, oldest first.
func (l *List[T]) Values() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, entry := range l.entries {
			if !yield(i, entry) {
				return
			}
		}
	}
}

// Reset flushes and resets the list.
func (l *List[T]) Reset() {
	clear(l.entries)
	l.entries = l.entries[:0]
}
