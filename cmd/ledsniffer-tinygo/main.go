// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build tinygo

// ledsniffer-tinygo runs the sniffer on a microcontroller wired to the panel
// bus and prints every change on the serial console.
//
// Build with: tinygo flash -target=<board> ./cmd/ledsniffer-tinygo
package main

import (
	"context"
	"machine"
	"time"

	"github.com/GermanBionicSystems/ledsniffer/gpioirq"
	"github.com/GermanBionicSystems/ledsniffer/novotronic"
	"github.com/GermanBionicSystems/ledsniffer/textsink"
)

// Bus wiring.
const (
	pinData  machine.Pin = 14
	pinClock machine.Pin = 12
	pinLeft  machine.Pin = 4
	pinRight machine.Pin = 5
)

func main() {
	pin := func(p machine.Pin) gpioirq.Pin {
		return gpioirq.NewMachine(p, machine.PinInput, false)
	}
	s, err := novotronic.New(novotronic.Pins{
		Data:  pin(pinData),
		Clock: pin(pinClock),
		Left:  pin(pinLeft),
		Right: pin(pinRight),
	},
		&textsink.Func{F: func(v string) { println("time:", v) }},
		&textsink.Func{F: func(v string) { println("state:", v) }},
		nil)
	if err != nil {
		fail(err)
	}
	if err := s.Setup(); err != nil {
		fail(err)
	}
	s.Run(context.Background(), 100*time.Millisecond)
}

// fail reports err forever; there is nowhere to exit to.
func fail(err error) {
	for {
		println("ledsniffer:", err.Error())
		time.Sleep(5 * time.Second)
	}
}
