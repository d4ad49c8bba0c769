// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !tinygo

// ledsniffer taps the LED driver bus of a Novotronic washing machine panel
// and publishes the remaining time and the machine state to the configured
// outputs.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/ledsniffer/internal/config"
	"github.com/GermanBionicSystems/ledsniffer/mc14489"
	"github.com/GermanBionicSystems/ledsniffer/novotronic"
)

func main() {
	cfgPath := flag.String("config", "/etc/ledsniffer.yaml", "configuration file")
	flag.Parse()

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	if _, err := host.Init(); err != nil {
		log.Fatalf("host init failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Outputs
	// --------------------

	out, err := buildOutputs(ctx, &cfg.Outputs)
	if err != nil {
		log.Fatalf("outputs failed: %v", err)
	}
	defer out.close()

	// --------------------
	// Sniffer
	// --------------------

	pins, closePins, err := buildPins(&cfg.Sniffer)
	if err != nil {
		log.Fatalf("pins failed: %v", err)
	}
	defer closePins()

	s, err := novotronic.New(pins, out.time, out.state, &novotronic.Opts{
		ClockEdge: clockEdge(cfg.Sniffer.ClockEdge),
		Chip: mc14489.Opts{
			ActiveHigh: cfg.Sniffer.SelectActiveHigh,
			Votes:      cfg.Sniffer.Votes,
		},
	})
	if err != nil {
		log.Fatalf("sniffer failed: %v", err)
	}
	if err := s.Setup(); err != nil {
		log.Fatalf("sniffer setup failed: %v", err)
	}
	defer func() {
		if err := s.Halt(); err != nil {
			log.Printf("sniffer halt: %v", err)
		}
	}()

	log.Printf("%s: sniffing %s/%s, enable %s/%s", s, pins.Data, pins.Clock, pins.Left, pins.Right)
	s.Run(ctx, cfg.Sniffer.PollInterval())
	log.Printf("%s: stopped, %s %+v, %s %+v", s, s.Left(), s.Left().Stats(), s.Right(), s.Right().Stats())
}

func clockEdge(name string) gpio.Edge {
	switch name {
	case "falling":
		return gpio.FallingEdge
	case "both":
		return gpio.BothEdges
	default:
		return gpio.RisingEdge
	}
}
