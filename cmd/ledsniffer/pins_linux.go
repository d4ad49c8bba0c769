// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build linux && !tinygo

package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/warthog618/gpiod"
	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/ledsniffer/gpioirq"
	"github.com/GermanBionicSystems/ledsniffer/internal/config"
	"github.com/GermanBionicSystems/ledsniffer/novotronic"
)

func buildGpiodPins(cfg *config.SnifferConfig) (novotronic.Pins, func(), error) {
	chip, err := gpiod.NewChip(cfg.Chip, gpiod.WithConsumer("ledsniffer"))
	if err != nil {
		return novotronic.Pins{}, nil, fmt.Errorf("gpiod: %w", err)
	}
	closeChip := func() {
		if err := chip.Close(); err != nil {
			log.Printf("gpiod: %v", err)
		}
	}

	var pins novotronic.Pins
	for _, p := range []struct {
		dst    *gpioirq.Pin
		offset string
	}{
		{&pins.Data, cfg.Pins.Data},
		{&pins.Clock, cfg.Pins.Clock},
		{&pins.Left, cfg.Pins.LeftSelect},
		{&pins.Right, cfg.Pins.RightSelect},
	} {
		offset, err := strconv.Atoi(p.offset)
		if err != nil {
			closeChip()
			return novotronic.Pins{}, nil, fmt.Errorf("gpiod: line %q: %w", p.offset, err)
		}
		*p.dst = gpioirq.NewGpiod(chip, offset, &gpioirq.GpiodOpts{Pull: gpio.Float})
	}
	return pins, closeChip, nil
}
