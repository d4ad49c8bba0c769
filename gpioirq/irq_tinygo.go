// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build tinygo

package gpioirq

// dispatch runs h directly; the interrupt controller already serializes
// handlers.
func dispatch(h Handler) {
	h()
}
