// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config holds the YAML configuration of the ledsniffer daemon.
//
// Use Load, then Validate, then Normalize.
package config

type Config struct {
	Sniffer SnifferConfig `yaml:"sniffer"`
	Outputs OutputsConfig `yaml:"outputs"`
}

// ---- SNIFFER ----

type SnifferConfig struct {
	// Backend is "periph" (default) or "gpiod".
	Backend string `yaml:"backend"`
	// Chip is the gpiod character device, e.g. "gpiochip0".
	Chip string     `yaml:"chip"`
	Pins PinsConfig `yaml:"pins"`

	SelectActiveHigh bool `yaml:"select_active_high"`
	// ClockEdge is "rising" (default), "falling" or "both".
	ClockEdge      string `yaml:"clock_edge"`
	Votes          int    `yaml:"votes"`
	PollIntervalMs int    `yaml:"poll_interval_ms"`
}

// PinsConfig names the four tapped lines. With the periph backend these are
// gpioreg names ("GPIO14"), with gpiod line offsets ("14").
type PinsConfig struct {
	Data        string `yaml:"data"`
	Clock       string `yaml:"clock"`
	LeftSelect  string `yaml:"left_select"`
	RightSelect string `yaml:"right_select"`
}

// ---- OUTPUTS ----

type OutputsConfig struct {
	Log     *bool          `yaml:"log"` // default true
	Console bool           `yaml:"console"`
	MAX7219 *MAX7219Config `yaml:"max7219"`
	Panel   *PanelConfig   `yaml:"panel"`
	HTTP    *HTTPConfig    `yaml:"http"`
}

type MAX7219Config struct {
	// SPI is the spireg port name, empty for the first one.
	SPI       string `yaml:"spi"`
	Digits    int    `yaml:"digits"`
	Intensity int    `yaml:"intensity"`
}

type PanelConfig struct {
	// I2C is the i2creg bus name, empty for the first one.
	I2C    string `yaml:"i2c"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type HTTPConfig struct {
	Listen   string `yaml:"listen"`
	MDNS     bool   `yaml:"mdns"`
	Instance string `yaml:"instance"`
	// Format is "json" (default) or "text".
	Format string `yaml:"format"`
}

// LogEnabled reports whether text changes are logged.
func (o *OutputsConfig) LogEnabled() bool {
	return o.Log == nil || *o.Log
}
