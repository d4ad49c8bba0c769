// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mc14489

// Configuration register bits selecting special decode for banks 1 to 3.
// Special decode is active when all bits of the mask are set.
const (
	Bank1Special uint8 = 0x42
	Bank2Special uint8 = 0x44
	Bank3Special uint8 = 0x48
)

// Digits holds the characters shown by banks 1 to 3.
type Digits [3]byte

func (d Digits) String() string {
	return string(d[:])
}

// specialFont is the MC14489 special decode character set.
var specialFont = [16]byte{
	' ', 'c', 'H', 'h', 'J', 'L', 'n', 'o',
	'P', 'r', 'U', 'u', 'y', '-', '=', 'o',
}

// DecodeBank returns the character shown for nibble in hex or special
// decode mode. Only the low 4 bits of nibble are used.
func DecodeBank(nibble uint8, special bool) byte {
	nibble &= 0x0F
	if special {
		return specialFont[nibble]
	}
	if nibble < 10 {
		return '0' + nibble
	}
	return 'A' + nibble - 10
}

// DecodeDisplay returns the characters of banks 1 to 3 of the display
// register, decoded as configured by control.
func DecodeDisplay(display uint32, control uint8) Digits {
	return Digits{
		DecodeBank(uint8(display), control&Bank1Special == Bank1Special),
		DecodeBank(uint8(display>>4), control&Bank2Special == Bank2Special),
		DecodeBank(uint8(display>>8), control&Bank3Special == Bank3Special),
	}
}

// IsOff reports whether control puts the chip in low-power mode.
func IsOff(control uint8) bool {
	return control&1 == 0
}
