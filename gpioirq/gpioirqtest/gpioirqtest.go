// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gpioirqtest is meant to be used to test drivers using gpioirq.Pin.
//
// Levels are driven explicitly with Set; the attached handler runs
// synchronously on the calling goroutine when the transition matches the
// requested edge.
package gpioirqtest

import (
	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/ledsniffer/gpioirq"
)

// Pin implements gpioirq.Pin.
type Pin struct {
	N string
	L gpio.Level // Current level
	E gpio.Edge  // Edge requested by AttachInterrupt

	// SetupErr is returned by Setup when set.
	SetupErr error
	// Configured is true once Setup succeeded.
	Configured bool
	// Halted is true once Halt was called.
	Halted bool

	h gpioirq.Handler
}

func (p *Pin) String() string {
	return p.N
}

// Setup implements gpioirq.Pin.
func (p *Pin) Setup() error {
	if p.SetupErr != nil {
		return p.SetupErr
	}
	p.Configured = true
	return nil
}

// Read implements gpioirq.Pin.
func (p *Pin) Read() gpio.Level {
	return p.L
}

// AttachInterrupt implements gpioirq.Pin.
func (p *Pin) AttachInterrupt(h gpioirq.Handler, edge gpio.Edge) error {
	p.h = h
	p.E = edge
	return nil
}

// Halt implements gpioirq.Pin.
func (p *Pin) Halt() error {
	p.h = nil
	p.E = gpio.NoEdge
	p.Halted = true
	return nil
}

// Attached reports whether a handler is attached.
func (p *Pin) Attached() bool {
	return p.h != nil
}

// Set drives the line to l and runs the handler if the transition is an
// edge it listens to.
func (p *Pin) Set(l gpio.Level) {
	prev := p.L
	p.L = l
	if p.h != nil && gpioirq.Matches(p.E, prev, l) {
		p.h()
	}
}

// Pulse drives the line to the opposite level and back.
func (p *Pin) Pulse() {
	p.Set(!p.L)
	p.Set(!p.L)
}

var _ gpioirq.Pin = &Pin{}
