// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build tinygo

package gpioirq

import (
	"errors"
	"machine"
	"strconv"

	"periph.io/x/conn/v3/gpio"
)

// MachinePin is a microcontroller pin with a hardware edge interrupt.
type MachinePin struct {
	p        machine.Pin
	mode     machine.PinMode
	inverted bool
}

// NewMachine returns a Pin for p configured with mode on Setup.
func NewMachine(p machine.Pin, mode machine.PinMode, inverted bool) *MachinePin {
	return &MachinePin{p: p, mode: mode, inverted: inverted}
}

func (p *MachinePin) String() string {
	return "GPIO" + strconv.Itoa(int(p.p))
}

// Setup implements Pin.
func (p *MachinePin) Setup() error {
	p.p.Configure(machine.PinConfig{Mode: p.mode})
	return nil
}

// Read implements Pin.
func (p *MachinePin) Read() gpio.Level {
	return gpio.Level(p.p.Get() != p.inverted)
}

// AttachInterrupt implements Pin.
func (p *MachinePin) AttachInterrupt(h Handler, edge gpio.Edge) error {
	if h == nil {
		return errors.New("gpioirq: nil handler")
	}
	var change machine.PinChange
	switch physicalEdge(edge, p.inverted) {
	case gpio.RisingEdge:
		change = machine.PinRising
	case gpio.FallingEdge:
		change = machine.PinFalling
	case gpio.BothEdges:
		change = machine.PinToggle
	default:
		return errors.New("gpioirq: an edge is required")
	}
	return p.p.SetInterrupt(change, func(machine.Pin) {
		dispatch(h)
	})
}

// Halt implements Pin.
func (p *MachinePin) Halt() error {
	return p.p.SetInterrupt(0, nil)
}

var _ Pin = &MachinePin{}
