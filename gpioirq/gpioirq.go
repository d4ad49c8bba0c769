// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gpioirq defines an input line that can call a function on every
// edge, the capability a passive bus sniffer needs from its platform.
//
// Three bindings are provided:
//
//   - PeriphPin wraps any periph.io gpio.PinIn and watches edges with
//     WaitForEdge.
//   - GpiodPin uses the Linux GPIO character device through
//     github.com/warthog618/gpiod (Linux only).
//   - MachinePin uses machine.Pin.SetInterrupt (TinyGo only).
//
// On TinyGo handlers run in real interrupt context. The hosted bindings
// deliver edges from watcher goroutines; every handler of every pin is run
// under one package-wide lock so that, as on a single core microcontroller,
// no two handlers ever overlap.
package gpioirq

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Handler is called for every matching edge. It must not block.
type Handler func()

// Pin is an input line that can deliver edge interrupts.
type Pin interface {
	fmt.Stringer
	// Setup configures the line as a digital input.
	Setup() error
	// Read returns the instantaneous logical level, after inversion.
	Read() gpio.Level
	// AttachInterrupt arranges for h to be called on every logical edge
	// matching edge. It replaces any previously attached handler.
	AttachInterrupt(h Handler, edge gpio.Edge) error
	// Halt detaches the handler and releases the line.
	Halt() error
}

// physicalEdge maps a logical edge to the edge seen on an inverted line.
func physicalEdge(edge gpio.Edge, inverted bool) gpio.Edge {
	if !inverted {
		return edge
	}
	switch edge {
	case gpio.RisingEdge:
		return gpio.FallingEdge
	case gpio.FallingEdge:
		return gpio.RisingEdge
	default:
		return edge
	}
}

// Matches reports whether a transition from prev to next is an edge of kind
// edge.
func Matches(edge gpio.Edge, prev, next gpio.Level) bool {
	if prev == next {
		return false
	}
	switch edge {
	case gpio.RisingEdge:
		return next == gpio.High
	case gpio.FallingEdge:
		return next == gpio.Low
	case gpio.BothEdges:
		return true
	default:
		return false
	}
}
