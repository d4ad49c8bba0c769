// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package panel renders the remaining time and the machine state onto any
// periph display, e.g. a small SSD1306 OLED.
//
// The time is drawn centered on the top line, the state is word wrapped
// below it. Every change redraws the whole frame.
package panel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/ledsniffer/textsink"
)

// Opts represents the options available for a Panel.
type Opts struct {
	// Face defaults to basicfont.Face7x13.
	Face       font.Face
	Foreground color.Color
	Background color.Color

	_ struct{}
}

// DefaultOpts draws white text on black, which suits monochrome OLEDs.
var DefaultOpts = Opts{
	Face:       basicfont.Face7x13,
	Foreground: color.White,
	Background: color.Black,
}

// Panel draws both status strings on a display.Drawer.
type Panel struct {
	d    display.Drawer
	opts Opts

	mu    sync.Mutex
	time  string
	state string
}

// New returns a Panel drawing on d.
func New(d display.Drawer, opts *Opts) (*Panel, error) {
	if d == nil {
		return nil, errors.New("panel: no display")
	}
	o := DefaultOpts
	if opts != nil {
		if opts.Face != nil {
			o.Face = opts.Face
		}
		if opts.Foreground != nil {
			o.Foreground = opts.Foreground
		}
		if opts.Background != nil {
			o.Background = opts.Background
		}
	}
	if r := d.Bounds(); r.Dx() <= 0 || r.Dy() <= 0 {
		return nil, fmt.Errorf("panel: %s has empty bounds %v", d, r)
	}
	return &Panel{d: d, opts: o}, nil
}

func (p *Panel) String() string {
	return fmt.Sprintf("Panel{%s}", p.d)
}

// Halt implements conn.Resource.
func (p *Panel) Halt() error {
	return p.d.Halt()
}

// Time returns the sink for the remaining time.
func (p *Panel) Time() textsink.Sink {
	return &field{p: p, v: &p.time}
}

// State returns the sink for the machine state.
func (p *Panel) State() textsink.Sink {
	return &field{p: p, v: &p.state}
}

// Render returns the frame for the current strings.
func (p *Panel) Render() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderLocked()
}

func (p *Panel) renderLocked() image.Image {
	r := p.d.Bounds()
	w, h := float64(r.Dx()), float64(r.Dy())
	dc := gg.NewContext(r.Dx(), r.Dy())
	dc.SetColor(p.opts.Background)
	dc.Clear()
	dc.SetColor(p.opts.Foreground)
	dc.SetFontFace(p.opts.Face)

	lh := dc.FontHeight() * 1.2
	dc.DrawStringAnchored(p.time, w/2, lh/2, 0.5, 0.5)
	y := lh * 1.5
	for _, line := range dc.WordWrap(p.state, w-2) {
		if y > h {
			break
		}
		dc.DrawStringAnchored(line, 1, y, 0, 0.5)
		y += lh
	}
	return dc.Image()
}

func (p *Panel) drawLocked() error {
	return p.d.Draw(p.d.Bounds(), p.renderLocked(), image.Point{})
}

// field is a Sink for one of the two strings of a Panel.
type field struct {
	p *Panel
	v *string
}

func (f *field) Value() string {
	f.p.mu.Lock()
	defer f.p.mu.Unlock()
	return *f.v
}

func (f *field) Publish(v string) {
	f.p.mu.Lock()
	defer f.p.mu.Unlock()
	*f.v = v
	if err := f.p.drawLocked(); err != nil {
		log.Printf("panel: %v", err)
	}
}

var _ fmt.Stringer = &Panel{}
var _ textsink.Sink = &field{}
