// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux && !tinygo

package gpioirq

import (
	"errors"
	"fmt"
	"sync"

	"github.com/warthog618/gpiod"
	"periph.io/x/conn/v3/gpio"
)

// GpiodOpts configures a GpiodPin.
type GpiodOpts struct {
	// Pull selects the line bias. gpio.PullNoChange leaves it as is.
	Pull gpio.Pull
	// Inverted requests the line as active low.
	Inverted bool

	_ struct{}
}

// GpiodPin is a line of a Linux GPIO character device. Edge events are
// delivered by gpiod's event goroutine, one per requested line.
//
// Handlers of different pins are serialized, not ordered: a select edge may
// be handled after a clock edge that followed it, and levels are read when
// the handler runs.
type GpiodPin struct {
	chip   *gpiod.Chip
	offset int
	opts   GpiodOpts

	mu   sync.Mutex
	line *gpiod.Line
}

// NewGpiod returns a Pin for line offset of chip. opts may be nil.
func NewGpiod(chip *gpiod.Chip, offset int, opts *GpiodOpts) *GpiodPin {
	p := &GpiodPin{chip: chip, offset: offset, opts: GpiodOpts{Pull: gpio.PullNoChange}}
	if opts != nil {
		p.opts = *opts
	}
	return p
}

func (p *GpiodPin) String() string {
	return fmt.Sprintf("%s:%d", p.chip.Name, p.offset)
}

// Setup implements Pin.
func (p *GpiodPin) Setup() error {
	return p.request()
}

// Read implements Pin. A failed read reports gpio.Low.
func (p *GpiodPin) Read() gpio.Level {
	p.mu.Lock()
	line := p.line
	p.mu.Unlock()
	if line == nil {
		return gpio.Low
	}
	v, err := line.Value()
	if err != nil {
		return gpio.Low
	}
	return v != 0
}

// AttachInterrupt implements Pin.
//
// With Inverted set the kernel reports edges of the logical value, so edge
// is passed through unchanged.
func (p *GpiodPin) AttachInterrupt(h Handler, edge gpio.Edge) error {
	if h == nil {
		return errors.New("gpioirq: nil handler")
	}
	var eo gpiod.LineReqOption
	switch edge {
	case gpio.RisingEdge:
		eo = gpiod.WithRisingEdge
	case gpio.FallingEdge:
		eo = gpiod.WithFallingEdge
	case gpio.BothEdges:
		eo = gpiod.WithBothEdges
	default:
		return errors.New("gpioirq: an edge is required")
	}
	return p.request(gpiod.WithEventHandler(func(gpiod.LineEvent) {
		dispatch(h)
	}), eo)
}

// Halt implements Pin.
func (p *GpiodPin) Halt() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.line == nil {
		return nil
	}
	err := p.line.Close()
	p.line = nil
	return err
}

// request (re)requests the line with the base options plus extra.
func (p *GpiodPin) request(extra ...gpiod.LineReqOption) error {
	opts := []gpiod.LineReqOption{gpiod.AsInput}
	if p.opts.Inverted {
		opts = append(opts, gpiod.AsActiveLow)
	}
	switch p.opts.Pull {
	case gpio.PullUp:
		opts = append(opts, gpiod.WithPullUp)
	case gpio.PullDown:
		opts = append(opts, gpiod.WithPullDown)
	case gpio.Float:
		opts = append(opts, gpiod.WithBiasDisabled)
	}
	opts = append(opts, extra...)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.line != nil {
		_ = p.line.Close()
		p.line = nil
	}
	line, err := p.chip.RequestLine(p.offset, opts...)
	if err != nil {
		return fmt.Errorf("gpioirq: request %s:%d: %w", p.chip.Name, p.offset, err)
	}
	p.line = line
	return nil
}

var _ Pin = &GpiodPin{}
