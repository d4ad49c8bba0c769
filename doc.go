// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ledsniffer is a container for the packages that decode the front
// panel of a washing machine by listening to the bus of its MC14489 LED
// drivers.
//
// Start with novotronic.Sniffer; cmd/ledsniffer wires it to the outputs.
package ledsniffer
