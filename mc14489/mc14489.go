// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mc14489 passively decodes the serial stream sent to a Motorola
// MC14489 multi-character LED display driver.
//
// The MC14489 is written through a three wire interface: an active low
// enable, a clock and a data line sampled MSB first on the rising clock
// edge. A transfer of 8 bits writes the configuration register, a transfer
// of 24 bits writes the display register. Any other length is ignored by the
// chip, and is treated as a glitch here.
//
// Dev never drives the bus. It listens to the enable line through a
// gpioirq.Pin and is fed data bits by its owner, so several chips sharing a
// clock and data line sample each bit only once.
//
// Decoded registers only change after Opts.Votes consecutive identical
// transfers, which rejects frames corrupted by cross talk between the
// enable lines of chained chips.
//
// # Datasheet
//
// https://www.nxp.com/docs/en/data-sheet/MC14489.pdf
package mc14489

import (
	"errors"
	"fmt"
	"sync/atomic"

	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/ledsniffer/consensus"
	"github.com/GermanBionicSystems/ledsniffer/gpioirq"
)

const (
	controlBits = 8
	displayBits = 24
	displayMask = 1<<displayBits - 1
)

// Opts holds the configuration of a Dev.
type Opts struct {
	// ActiveHigh selects the chip while the enable line is high. The
	// MC14489 enable input is active low, which is the zero value.
	ActiveHigh bool
	// Votes is the number of identical consecutive transfers required to
	// accept a register value. Zero selects consensus.DefaultVotes.
	Votes int

	_ struct{}
}

// DefaultOpts is the configuration of a chip wired as in the datasheet.
var DefaultOpts = Opts{Votes: consensus.DefaultVotes}

// Registers is a snapshot of the decoded registers of one chip.
type Registers struct {
	Control uint8
	Display uint32
}

// Off reports whether the chip is in low-power mode.
func (r Registers) Off() bool {
	return IsOff(r.Control)
}

// Digits decodes banks 1 to 3 of the display register.
func (r Registers) Digits() Digits {
	return DecodeDisplay(r.Display, r.Control)
}

func (r Registers) String() string {
	return fmt.Sprintf("ctrl=0x%02x disp=0x%06x", r.Control, r.Display)
}

// Stats counts transfers seen on the bus.
type Stats struct {
	// ControlFrames and DisplayFrames count well framed transfers.
	ControlFrames uint32
	DisplayFrames uint32
	// Glitches counts transfers of any other length.
	Glitches uint32
	// ControlAgreed and DisplayAgreed count transfers that completed a
	// unanimous vote.
	ControlAgreed uint32
	DisplayAgreed uint32
}

// Dev is a passive decoder for one MC14489.
type Dev struct {
	name string
	cs   gpioirq.Pin
	opts Opts

	// Only touched from interrupt context.
	selected bool
	acc      uint32
	bits     uint8

	control *consensus.Buffer[uint8]
	display *consensus.Buffer[uint32]

	controlFrames atomic.Uint32
	displayFrames atomic.Uint32
	glitches      atomic.Uint32
	controlAgreed atomic.Uint32
	displayAgreed atomic.Uint32
}

// New returns a decoder listening to the enable line cs. opts may be nil.
func New(name string, cs gpioirq.Pin, opts *Opts) (*Dev, error) {
	if cs == nil {
		return nil, errors.New("mc14489: enable pin is required")
	}
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	return &Dev{
		name:    name,
		cs:      cs,
		opts:    o,
		control: consensus.New[uint8](o.Votes),
		display: consensus.New[uint32](o.Votes),
	}, nil
}

func (d *Dev) String() string {
	return "MC14489{" + d.name + "}"
}

// Setup configures the enable line and starts listening to it.
func (d *Dev) Setup() error {
	if err := d.cs.Setup(); err != nil {
		return fmt.Errorf("mc14489: %s: %w", d.name, err)
	}
	if err := d.cs.AttachInterrupt(d.onSelectEdge, gpio.BothEdges); err != nil {
		return fmt.Errorf("mc14489: %s: %w", d.name, err)
	}
	return nil
}

// Halt stops listening to the enable line.
func (d *Dev) Halt() error {
	return d.cs.Halt()
}

func (d *Dev) onSelectEdge() {
	d.Select(d.cs.Read())
}

// Select processes a new level of the enable line.
//
// Selecting the chip starts a new transfer. Deselecting it latches the
// transfer into the control or display register vote, depending on its
// length. A level that does not change the selection is ignored.
//
// It must be called from interrupt context.
func (d *Dev) Select(l gpio.Level) {
	selected := bool(l) == d.opts.ActiveHigh
	if selected == d.selected {
		return
	}
	d.selected = selected
	if selected {
		d.acc = 0
		d.bits = 0
		return
	}
	switch d.bits {
	case controlBits:
		d.controlFrames.Add(1)
		if d.control.Feed(uint8(d.acc)) {
			d.controlAgreed.Add(1)
		}
	case displayBits:
		d.displayFrames.Add(1)
		if d.display.Feed(d.acc & displayMask) {
			d.displayAgreed.Add(1)
		}
	default:
		d.glitches.Add(1)
	}
}

// Tick shifts in one data bit if the chip is selected.
//
// It must be called from interrupt context on every active clock edge.
func (d *Dev) Tick(bit gpio.Level) {
	if !d.selected {
		return
	}
	d.acc <<= 1
	if bit {
		d.acc |= 1
	}
	if d.bits != 0xFF {
		d.bits++
	}
}

// Control returns the agreed configuration register.
func (d *Dev) Control() uint8 {
	return d.control.Value()
}

// Display returns the agreed 24-bit display register.
func (d *Dev) Display() uint32 {
	return d.display.Value()
}

// Registers returns both agreed registers.
func (d *Dev) Registers() Registers {
	return Registers{Control: d.Control(), Display: d.Display()}
}

// Stats returns the transfer counters.
func (d *Dev) Stats() Stats {
	return Stats{
		ControlFrames: d.controlFrames.Load(),
		DisplayFrames: d.displayFrames.Load(),
		Glitches:      d.glitches.Load(),
		ControlAgreed: d.controlAgreed.Load(),
		DisplayAgreed: d.displayAgreed.Load(),
	}
}
