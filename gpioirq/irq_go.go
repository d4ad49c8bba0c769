// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !tinygo

package gpioirq

import "sync"

// irqMu serializes all handlers, standing in for the single interrupt
// context of a microcontroller.
var irqMu sync.Mutex

// dispatch runs h as if it were an interrupt service routine.
func dispatch(h Handler) {
	irqMu.Lock()
	defer irqMu.Unlock()
	h()
}
