// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !linux && !tinygo

package main

import (
	"errors"

	"github.com/GermanBionicSystems/ledsniffer/internal/config"
	"github.com/GermanBionicSystems/ledsniffer/novotronic"
)

func buildGpiodPins(cfg *config.SnifferConfig) (novotronic.Pins, func(), error) {
	return novotronic.Pins{}, nil, errors.New("gpiod: the character device backend requires linux")
}
