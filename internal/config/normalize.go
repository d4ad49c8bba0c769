// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import "time"

// Defaults applied by Normalize.
const (
	DefaultBackend        = "periph"
	DefaultClockEdge      = "rising"
	DefaultVotes          = 3
	DefaultPollIntervalMs = 100
	DefaultDigits         = 4
	DefaultIntensity      = 8
	DefaultPanelWidth     = 128
	DefaultPanelHeight    = 64
	DefaultListen         = ":8080"
	DefaultInstance       = "ledsniffer"
	DefaultFormat         = "json"
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	s := &cfg.Sniffer
	if s.Backend == "" {
		s.Backend = DefaultBackend
	}
	if s.ClockEdge == "" {
		s.ClockEdge = DefaultClockEdge
	}
	if s.Votes == 0 {
		s.Votes = DefaultVotes
	}
	if s.PollIntervalMs == 0 {
		s.PollIntervalMs = DefaultPollIntervalMs
	}

	o := &cfg.Outputs
	if m := o.MAX7219; m != nil {
		if m.Digits == 0 {
			m.Digits = DefaultDigits
		}
		// 0 reads as unset.
		if m.Intensity == 0 {
			m.Intensity = DefaultIntensity
		}
	}
	if p := o.Panel; p != nil {
		if p.Width == 0 {
			p.Width = DefaultPanelWidth
		}
		if p.Height == 0 {
			p.Height = DefaultPanelHeight
		}
	}
	if h := o.HTTP; h != nil {
		if h.Listen == "" {
			h.Listen = DefaultListen
		}
		if h.Instance == "" {
			h.Instance = DefaultInstance
		}
		if h.Format == "" {
			h.Format = DefaultFormat
		}
	}
}

// PollInterval returns the sniffer polling period.
func (s *SnifferConfig) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalMs) * time.Millisecond
}
