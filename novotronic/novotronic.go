// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package novotronic reads the front panel of a Miele Novotronic washing
// machine by sniffing the two chained MC14489 LED drivers of its controller.
//
// The left chip drives the three digit remaining time display, the right
// chip drives the program phase, spin speed and option LEDs. The bit
// assignments were reverse engineered on a W 8xx series controller.
//
// Sniffer listens to the bus, and on every Poll formats a remaining time
// string and a state string and forwards each to a textsink.Sink when it
// changed.
package novotronic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/ledsniffer/gpioirq"
	"github.com/GermanBionicSystems/ledsniffer/mc14489"
	"github.com/GermanBionicSystems/ledsniffer/textsink"
)

// Pins are the bus lines of the controller.
type Pins struct {
	Data  gpioirq.Pin
	Clock gpioirq.Pin
	// Left and Right are the enable lines of the time and state chips.
	Left  gpioirq.Pin
	Right gpioirq.Pin
}

// Opts holds the configuration of a Sniffer.
type Opts struct {
	// ClockEdge is the edge on which data is sampled. gpio.NoEdge selects
	// gpio.RisingEdge, as specified for the MC14489.
	ClockEdge gpio.Edge
	// Chip configures both chip decoders.
	Chip mc14489.Opts

	_ struct{}
}

// DefaultOpts matches the controller as built.
var DefaultOpts = Opts{
	ClockEdge: gpio.RisingEdge,
	Chip:      mc14489.DefaultOpts,
}

// Sniffer decodes the panel of one machine.
type Sniffer struct {
	data  gpioirq.Pin
	clock gpioirq.Pin
	left  *mc14489.Dev
	right *mc14489.Dev
	edge  gpio.Edge

	timeOut  textsink.Sink
	stateOut textsink.Sink
}

// New returns a Sniffer publishing to timeOut and stateOut. opts may be nil.
func New(pins Pins, timeOut, stateOut textsink.Sink, opts *Opts) (*Sniffer, error) {
	if pins.Data == nil || pins.Clock == nil {
		return nil, errors.New("novotronic: data and clock pins are required")
	}
	if timeOut == nil || stateOut == nil {
		return nil, errors.New("novotronic: time and state sinks are required")
	}
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.ClockEdge == gpio.NoEdge {
		o.ClockEdge = gpio.RisingEdge
	}
	left, err := mc14489.New("left", pins.Left, &o.Chip)
	if err != nil {
		return nil, fmt.Errorf("novotronic: %w", err)
	}
	right, err := mc14489.New("right", pins.Right, &o.Chip)
	if err != nil {
		return nil, fmt.Errorf("novotronic: %w", err)
	}
	return &Sniffer{
		data:     pins.Data,
		clock:    pins.Clock,
		left:     left,
		right:    right,
		edge:     o.ClockEdge,
		timeOut:  timeOut,
		stateOut: stateOut,
	}, nil
}

func (s *Sniffer) String() string {
	return fmt.Sprintf("Novotronic{data=%s, clk=%s, %s, %s}", s.data, s.clock, s.left, s.right)
}

// Setup configures all lines and starts listening to the bus.
func (s *Sniffer) Setup() error {
	if err := s.data.Setup(); err != nil {
		return fmt.Errorf("novotronic: data: %w", err)
	}
	if err := s.clock.Setup(); err != nil {
		return fmt.Errorf("novotronic: clock: %w", err)
	}
	if err := s.left.Setup(); err != nil {
		return err
	}
	if err := s.right.Setup(); err != nil {
		return err
	}
	if err := s.clock.AttachInterrupt(s.onClock, s.edge); err != nil {
		return fmt.Errorf("novotronic: clock: %w", err)
	}
	return nil
}

// Halt stops listening to the bus.
func (s *Sniffer) Halt() error {
	return errors.Join(s.clock.Halt(), s.data.Halt(), s.left.Halt(), s.right.Halt())
}

// onClock samples the data line once and shifts the bit into both chips.
// Only the selected chip keeps it.
func (s *Sniffer) onClock() {
	bit := s.data.Read()
	s.left.Tick(bit)
	s.right.Tick(bit)
}

// Left returns the decoder of the time display chip.
func (s *Sniffer) Left() *mc14489.Dev {
	return s.left
}

// Right returns the decoder of the state LED chip.
func (s *Sniffer) Right() *mc14489.Dev {
	return s.right
}

// Time returns the current remaining time string.
func (s *Sniffer) Time() string {
	return FormatTime(s.left.Registers())
}

// State returns the current state string.
func (s *Sniffer) State() string {
	return FormatState(s.left.Registers(), s.right.Registers())
}

// Poll formats both outputs and publishes those that changed.
//
// It must not be called concurrently with itself.
func (s *Sniffer) Poll() {
	left, right := s.left.Registers(), s.right.Registers()
	textsink.PublishChanged(s.timeOut, FormatTime(left))
	textsink.PublishChanged(s.stateOut, FormatState(left, right))
}

// Run calls Poll every interval until ctx is done.
func (s *Sniffer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Poll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Poll()
		}
	}
}
