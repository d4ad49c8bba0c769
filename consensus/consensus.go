// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package consensus

import "sync/atomic"

// DefaultVotes is the number of identical consecutive samples required
// before a Buffer accepts a value.
const DefaultVotes = 3

// Word is a register value that fits in a single machine word.
type Word interface {
	~uint8 | ~uint16 | ~uint32
}

// Buffer is a majority-vote debounce filter.
//
// Feed must only be called from one context at a time (an interrupt handler).
// Value may be called from any goroutine.
type Buffer[T Word] struct {
	ring  *Ring[T]
	value atomic.Uint32
}

// New returns a Buffer that requires votes identical samples. A value of
// zero or less selects DefaultVotes.
func New[T Word](votes int) *Buffer[T] {
	if votes <= 0 {
		votes = DefaultVotes
	}
	return &Buffer[T]{ring: NewRing[T](votes)}
}

// Feed records a sample. It returns true when the window is full and every
// sample in it is equal, in which case that value becomes visible.
func (b *Buffer[T]) Feed(v T) bool {
	b.ring.Push(v)
	if b.ring.Len() < b.ring.Cap() {
		return false
	}
	first := b.ring.At(0)
	for i := 1; i < b.ring.Cap(); i++ {
		if b.ring.At(i) != first {
			return false
		}
	}
	b.value.Store(uint32(first))
	return true
}

// Value returns the last agreed value, or zero if the window never agreed.
func (b *Buffer[T]) Value() T {
	return T(b.value.Load())
}

// Votes returns the window size.
func (b *Buffer[T]) Votes() int {
	return b.ring.Cap()
}
