// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mc14489test bit-bangs MC14489 transfers on gpioirqtest pins, for
// testing code that sniffs them.
package mc14489test

import (
	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/ledsniffer/gpioirq/gpioirqtest"
)

// Bus is a clock and data line shared by chained chips.
type Bus struct {
	Data  *gpioirqtest.Pin
	Clock *gpioirqtest.Pin
	// ActiveHigh must match the sniffer configuration.
	ActiveHigh bool
}

// NewBus returns an idle bus with the clock low.
func NewBus() *Bus {
	return &Bus{
		Data:  &gpioirqtest.Pin{N: "DATA"},
		Clock: &gpioirqtest.Pin{N: "CLK"},
	}
}

// NewSelect returns an enable line at its idle level.
func (b *Bus) NewSelect(name string) *gpioirqtest.Pin {
	return &gpioirqtest.Pin{N: name, L: b.idle()}
}

// Send writes the low n bits of v, MSB first, to the chip enabled by cs.
func (b *Bus) Send(cs *gpioirqtest.Pin, v uint32, n int) {
	cs.Set(!b.idle())
	for i := n - 1; i >= 0; i-- {
		b.Data.Set(gpio.Level(v>>uint(i)&1 != 0))
		b.Clock.Set(gpio.High)
		b.Clock.Set(gpio.Low)
	}
	cs.Set(b.idle())
}

// SendRepeated sends the same transfer count times.
func (b *Bus) SendRepeated(cs *gpioirqtest.Pin, v uint32, n, count int) {
	for i := 0; i < count; i++ {
		b.Send(cs, v, n)
	}
}

// Control sends a configuration register write.
func (b *Bus) Control(cs *gpioirqtest.Pin, v uint8) {
	b.Send(cs, uint32(v), 8)
}

// Display sends a display register write.
func (b *Bus) Display(cs *gpioirqtest.Pin, v uint32) {
	b.Send(cs, v, 24)
}

func (b *Bus) idle() gpio.Level {
	return gpio.Level(!b.ActiveHigh)
}
