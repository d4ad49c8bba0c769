// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mc14489

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/ledsniffer/gpioirq/gpioirqtest"
	"github.com/GermanBionicSystems/ledsniffer/mc14489/mc14489test"
)

func newTestDev(t *testing.T, opts *Opts) (*Dev, *mc14489test.Bus, *gpioirqtest.Pin) {
	t.Helper()
	bus := mc14489test.NewBus()
	if opts != nil {
		bus.ActiveHigh = opts.ActiveHigh
	}
	cs := bus.NewSelect("CS")
	d, err := New("test", cs, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Setup(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Clock.AttachInterrupt(func() { d.Tick(bus.Data.Read()) }, gpio.RisingEdge); err != nil {
		t.Fatal(err)
	}
	return d, bus, cs
}

func TestNew(t *testing.T) {
	if _, err := New("x", nil, nil); err == nil {
		t.Error("New() without an enable pin should fail")
	}
	cs := &gpioirqtest.Pin{N: "CS", SetupErr: errors.New("busy")}
	d, err := New("left", cs, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Setup(); err == nil {
		t.Error("Setup() should report the pin error")
	}
	if d.String() != "MC14489{left}" {
		t.Errorf("String()=%q", d.String())
	}
}

func TestSetupAttachesBothEdges(t *testing.T) {
	d, _, cs := newTestDev(t, nil)
	if !cs.Configured || !cs.Attached() || cs.E != gpio.BothEdges {
		t.Errorf("enable pin not set up: configured=%t attached=%t edge=%s", cs.Configured, cs.Attached(), cs.E)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if cs.Attached() {
		t.Error("Halt() should detach the handler")
	}
}

func TestControlRegister(t *testing.T) {
	d, bus, cs := newTestDev(t, nil)
	bus.Control(cs, 0xB2)
	bus.Control(cs, 0xB2)
	if d.Control() != 0 {
		t.Errorf("Control()=0x%02x after two transfers, want 0", d.Control())
	}
	bus.Control(cs, 0xB2)
	if d.Control() != 0xB2 {
		t.Errorf("Control()=0x%02x, want 0xb2", d.Control())
	}
	if d.Display() != 0 {
		t.Errorf("Display()=0x%06x, want 0", d.Display())
	}
	want := Stats{ControlFrames: 3, ControlAgreed: 1}
	if diff := cmp.Diff(d.Stats(), want); diff != "" {
		t.Errorf("Stats() (-got +want):\n%s", diff)
	}
}

func TestDisplayRegister(t *testing.T) {
	d, bus, cs := newTestDev(t, nil)
	bus.SendRepeated(cs, 0x123456, 24, 3)
	if d.Display() != 0x123456 {
		t.Errorf("Display()=0x%06x, want 0x123456", d.Display())
	}
	if got := d.Registers(); got != (Registers{Display: 0x123456}) {
		t.Errorf("Registers()=%s", got)
	}
}

func TestGlitchDiscarded(t *testing.T) {
	d, bus, cs := newTestDev(t, nil)
	bus.SendRepeated(cs, 0x01, 8, 3)
	bus.SendRepeated(cs, 0x2AA, 10, 3)
	if d.Control() != 0x01 || d.Display() != 0 {
		t.Errorf("registers changed by glitches: %s", d.Registers())
	}
	if s := d.Stats(); s.Glitches != 3 || s.ControlFrames != 3 || s.DisplayFrames != 0 {
		t.Errorf("Stats()=%+v", s)
	}
}

func TestSingleCorruptFrame(t *testing.T) {
	d, bus, cs := newTestDev(t, nil)
	bus.SendRepeated(cs, 0x000123, 24, 3)
	bus.Display(cs, 0x000923)
	bus.Display(cs, 0x000123)
	if d.Display() != 0x000123 {
		t.Errorf("Display()=0x%06x, a single corrupt frame moved the register", d.Display())
	}
}

func TestBitCountSaturates(t *testing.T) {
	d, bus, cs := newTestDev(t, nil)
	for i := 0; i < 3; i++ {
		bus.Send(cs, 0xFFFFFFFF, 256+24)
	}
	if d.Display() != 0 {
		t.Errorf("Display()=0x%06x, an overlong frame was accepted", d.Display())
	}
	if s := d.Stats(); s.Glitches != 3 {
		t.Errorf("Glitches=%d, want 3", s.Glitches)
	}
}

func TestRepeatedLevelIgnored(t *testing.T) {
	d, err := New("x", &gpioirqtest.Pin{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		d.Select(gpio.Low)
		for _, b := range []gpio.Level{gpio.High, gpio.Low, gpio.High, gpio.High, gpio.Low, gpio.Low, gpio.High, gpio.Low} {
			d.Tick(b)
		}
		// A bounce on the inactive level must not latch the frame twice.
		d.Select(gpio.High)
		d.Select(gpio.High)
	}
	if d.Control() != 0xB2 {
		t.Errorf("Control()=0x%02x, want 0xb2", d.Control())
	}
	if s := d.Stats(); s.ControlFrames != 3 {
		t.Errorf("ControlFrames=%d, want 3", s.ControlFrames)
	}
}

func TestTickIgnoredWhileDeselected(t *testing.T) {
	d, bus, cs := newTestDev(t, nil)
	for i := 0; i < 50; i++ {
		bus.Data.Set(gpio.High)
		bus.Clock.Pulse()
	}
	bus.SendRepeated(cs, 0x81, 8, 3)
	if d.Control() != 0x81 {
		t.Errorf("Control()=0x%02x, want 0x81", d.Control())
	}
}

func TestActiveHigh(t *testing.T) {
	d, bus, cs := newTestDev(t, &Opts{ActiveHigh: true})
	if cs.L != gpio.Low {
		t.Fatal("active high enable should idle low")
	}
	bus.SendRepeated(cs, 0x4F, 8, 3)
	if d.Control() != 0x4F {
		t.Errorf("Control()=0x%02x, want 0x4f", d.Control())
	}
}

func TestVotes(t *testing.T) {
	d, bus, cs := newTestDev(t, &Opts{Votes: 5})
	bus.SendRepeated(cs, 0x11, 8, 4)
	if d.Control() != 0 {
		t.Errorf("Control()=0x%02x after 4 of 5 votes", d.Control())
	}
	bus.Control(cs, 0x11)
	if d.Control() != 0x11 {
		t.Errorf("Control()=0x%02x, want 0x11", d.Control())
	}
}
