// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpioirq

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// PeriphOpts configures a PeriphPin.
type PeriphOpts struct {
	// Pull is the resistor configuration applied on Setup.
	Pull gpio.Pull
	// Inverted flips every level read and every edge watched.
	Inverted bool
	// Poll bounds each WaitForEdge call so that Halt can stop the watcher.
	// Zero selects 100ms.
	Poll time.Duration

	_ struct{}
}

// DefaultPeriphOpts is a floating, non inverted input.
var DefaultPeriphOpts = PeriphOpts{
	Pull: gpio.Float,
	Poll: 100 * time.Millisecond,
}

// PeriphPin adapts a periph.io gpio.PinIn.
//
// Edges are detected with WaitForEdge in a dedicated goroutine, so delivery
// latency depends on the host. Kernels typically keep up with a few kHz.
//
// Each pin has its own goroutine. Handlers of different pins never run
// concurrently, but their order does not follow the order of the edges on
// the wire, and Read in a handler returns the level at the time it runs,
// not at the edge.
type PeriphPin struct {
	p    gpio.PinIn
	opts PeriphOpts

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewPeriph returns a Pin backed by p. opts may be nil.
func NewPeriph(p gpio.PinIn, opts *PeriphOpts) *PeriphPin {
	o := DefaultPeriphOpts
	if opts != nil {
		o = *opts
	}
	if o.Poll <= 0 {
		o.Poll = DefaultPeriphOpts.Poll
	}
	return &PeriphPin{p: p, opts: o}
}

func (p *PeriphPin) String() string {
	return p.p.Name()
}

// Setup implements Pin.
func (p *PeriphPin) Setup() error {
	if err := p.p.In(p.opts.Pull, gpio.NoEdge); err != nil {
		return fmt.Errorf("gpioirq: %s: %w", p.p, err)
	}
	return nil
}

// Read implements Pin.
func (p *PeriphPin) Read() gpio.Level {
	l := p.p.Read()
	if p.opts.Inverted {
		return !l
	}
	return l
}

// AttachInterrupt implements Pin.
func (p *PeriphPin) AttachInterrupt(h Handler, edge gpio.Edge) error {
	if h == nil {
		return errors.New("gpioirq: nil handler")
	}
	if edge == gpio.NoEdge {
		return errors.New("gpioirq: an edge is required")
	}
	p.stopWatcher()
	if err := p.p.In(p.opts.Pull, physicalEdge(edge, p.opts.Inverted)); err != nil {
		return fmt.Errorf("gpioirq: %s: %w", p.p, err)
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	p.mu.Lock()
	p.stop, p.done = stop, done
	p.mu.Unlock()
	go p.watch(h, stop, done)
	return nil
}

// Halt implements Pin.
func (p *PeriphPin) Halt() error {
	p.stopWatcher()
	return p.p.In(p.opts.Pull, gpio.NoEdge)
}

func (p *PeriphPin) watch(h Handler, stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		default:
		}
		if p.p.WaitForEdge(p.opts.Poll) {
			dispatch(h)
		}
	}
}

func (p *PeriphPin) stopWatcher() {
	p.mu.Lock()
	stop, done := p.stop, p.done
	p.stop, p.done = nil, nil
	p.mu.Unlock()
	if stop != nil {
		close(stop)
		<-done
	}
}

var _ Pin = &PeriphPin{}
