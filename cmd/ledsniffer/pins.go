// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !tinygo

package main

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/GermanBionicSystems/ledsniffer/gpioirq"
	"github.com/GermanBionicSystems/ledsniffer/internal/config"
	"github.com/GermanBionicSystems/ledsniffer/novotronic"
)

// buildPins opens the four bus lines with the configured backend. The
// returned function releases the backend.
func buildPins(cfg *config.SnifferConfig) (novotronic.Pins, func(), error) {
	if cfg.Backend == "gpiod" {
		return buildGpiodPins(cfg)
	}
	var pins novotronic.Pins
	for _, p := range []struct {
		dst  *gpioirq.Pin
		name string
	}{
		{&pins.Data, cfg.Pins.Data},
		{&pins.Clock, cfg.Pins.Clock},
		{&pins.Left, cfg.Pins.LeftSelect},
		{&pins.Right, cfg.Pins.RightSelect},
	} {
		pin := gpioreg.ByName(p.name)
		if pin == nil {
			return novotronic.Pins{}, nil, fmt.Errorf("no pin %q", p.name)
		}
		// The lines are driven by the controller, never pull them.
		*p.dst = gpioirq.NewPeriph(pin, &gpioirq.PeriphOpts{Pull: gpio.Float})
	}
	return pins, func() {}, nil
}
