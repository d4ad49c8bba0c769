// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"fmt"
	"net"
	"strconv"
)

const (
	MinVotes = 2
	MaxVotes = 16
)

// Validate checks configuration correctness.
// It performs declarative validation only; empty values are left for
// Normalize. It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("no configuration")
	}
	s := &cfg.Sniffer

	// ------------------------------------------------------------
	// SNIFFER
	// ------------------------------------------------------------

	switch s.Backend {
	case "", "periph":
	case "gpiod":
		if s.Chip == "" {
			return fmt.Errorf("sniffer: backend gpiod requires chip")
		}
	default:
		return fmt.Errorf("sniffer: unknown backend %q", s.Backend)
	}

	pins := []struct {
		key, name string
	}{
		{"data", s.Pins.Data},
		{"clock", s.Pins.Clock},
		{"left_select", s.Pins.LeftSelect},
		{"right_select", s.Pins.RightSelect},
	}
	owner := make(map[string]string, len(pins))
	for _, p := range pins {
		if p.name == "" {
			return fmt.Errorf("sniffer: pin %s is not set", p.key)
		}
		if s.Backend == "gpiod" {
			if n, err := strconv.Atoi(p.name); err != nil || n < 0 {
				return fmt.Errorf("sniffer: pin %s=%q is not a line offset", p.key, p.name)
			}
		}
		if prev, exists := owner[p.name]; exists {
			return fmt.Errorf("sniffer: pin %q used as both %s and %s", p.name, prev, p.key)
		}
		owner[p.name] = p.key
	}

	switch s.ClockEdge {
	case "", "rising", "falling", "both":
	default:
		return fmt.Errorf("sniffer: unknown clock_edge %q", s.ClockEdge)
	}

	if s.Votes != 0 && (s.Votes < MinVotes || s.Votes > MaxVotes) {
		return fmt.Errorf("sniffer: votes=%d out of range %d..%d", s.Votes, MinVotes, MaxVotes)
	}
	if s.PollIntervalMs < 0 {
		return fmt.Errorf("sniffer: negative poll_interval_ms")
	}

	// ------------------------------------------------------------
	// OUTPUTS
	// ------------------------------------------------------------

	o := &cfg.Outputs
	if m := o.MAX7219; m != nil {
		if m.Digits < 0 || m.Digits > 8 {
			return fmt.Errorf("outputs.max7219: digits=%d out of range 1..8", m.Digits)
		}
		if m.Intensity < 0 || m.Intensity > 15 {
			return fmt.Errorf("outputs.max7219: intensity=%d out of range 0..15", m.Intensity)
		}
	}
	if p := o.Panel; p != nil {
		if p.Width < 0 || p.Height < 0 {
			return fmt.Errorf("outputs.panel: negative size %dx%d", p.Width, p.Height)
		}
	}
	if h := o.HTTP; h != nil {
		if h.Listen != "" {
			if _, _, err := net.SplitHostPort(h.Listen); err != nil {
				return fmt.Errorf("outputs.http: listen: %w", err)
			}
		}
		switch h.Format {
		case "", "json", "text":
		default:
			return fmt.Errorf("outputs.http: unknown format %q", h.Format)
		}
	}
	return nil
}
