// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package consensus implements the debounce filter used to accept register
// values sniffed from a noisy serial bus.
//
// A Ring keeps the last N samples of a value. A Buffer feeds every sample into
// a Ring and only exposes a new value once the whole window agrees on it, so
// a single corrupted frame can never change what readers observe.
//
// Neither type allocates after construction. Ring is not safe for concurrent
// use; Buffer may be fed from one context and read from another.
package consensus

// Ring is a fixed capacity circular history of the last Cap() pushed values.
type Ring[T any] struct {
	values []T
	ptr    int
	size   int
}

// NewRing returns a Ring holding up to n values.
//
// It panics if n is not positive.
func NewRing[T any](n int) *Ring[T] {
	if n <= 0 {
		panic("consensus: ring capacity must be positive")
	}
	return &Ring[T]{values: make([]T, n)}
}

// Push stores v in the oldest slot.
func (r *Ring[T]) Push(v T) {
	r.values[r.ptr] = v
	r.ptr = (r.ptr + 1) % len(r.values)
	if r.size < len(r.values) {
		r.size++
	}
}

// Len returns the number of values pushed so far, capped at Cap().
func (r *Ring[T]) Len() int {
	return r.size
}

// Cap returns the capacity of the ring.
func (r *Ring[T]) Cap() int {
	return len(r.values)
}

// At returns the value stored in slot i. Slots are addressed in storage
// order, not in insertion order.
func (r *Ring[T]) At(i int) T {
	return r.values[i]
}
