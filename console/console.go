// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package console implements a status line on the terminal (stdout) using
// ANSI color codes.
//
// The line shows a colored indicator followed by the remaining time and the
// machine state, and is rewritten in place on every change.
package console

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/GermanBionicSystems/ledsniffer/novotronic"
	"github.com/GermanBionicSystems/ledsniffer/textsink"
)

// Indicator colors.
var (
	Running  = color.NRGBA{0x00, 0xC0, 0x00, 0xFF}
	DoorOpen = color.NRGBA{0xFF, 0xB0, 0x00, 0xFF}
	Fault    = color.NRGBA{0xFF, 0x00, 0x00, 0xFF}
)

// Opts represents the options available for this console.
type Opts struct {
	// W defaults to a colorable stdout.
	W       io.Writer
	Palette *ansi256.Palette

	_ struct{}
}

// Dev is a one line status display on the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette

	mu    sync.Mutex
	time  string
	state string
	buf   bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	var o Opts
	if opts != nil {
		o = *opts
	}
	p := o.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := o.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{w: w, palette: *p}
}

func (d *Dev) String() string {
	return "Console"
}

// Halt implements conn.Resource.
//
// It resets the colors and ends the status line.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Time returns the sink for the remaining time.
func (d *Dev) Time() textsink.Sink {
	return &field{d: d, v: &d.time}
}

// State returns the sink for the machine state.
func (d *Dev) State() textsink.Sink {
	return &field{d: d, v: &d.state}
}

// indicator picks the color matching the current state.
func (d *Dev) indicator() color.NRGBA {
	switch {
	case strings.HasPrefix(d.state, novotronic.LabelFault), d.time == "---":
		return Fault
	case strings.HasPrefix(d.state, novotronic.LabelDoorOpen):
		return DoorOpen
	default:
		return Running
	}
}

func (d *Dev) refreshLocked() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	_, _ = io.WriteString(&d.buf, d.palette.Block(d.indicator()))
	_, _ = fmt.Fprintf(&d.buf, "\033[0m %-6s | %s\033[K", strings.TrimSpace(d.time), d.state)
	_, err := d.buf.WriteTo(d.w)
	return err
}

// field is a Sink for one of the two strings of a Dev.
type field struct {
	d *Dev
	v *string
}

func (f *field) Value() string {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	return *f.v
}

func (f *field) Publish(v string) {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	*f.v = v
	if err := f.d.refreshLocked(); err != nil {
		log.Printf("console: %v", err)
	}
}

var _ fmt.Stringer = &Dev{}
var _ textsink.Sink = &field{}
