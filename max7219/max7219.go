// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// The max7219 package mirrors the remaining program time on a numeric
// 7-segment display driven by a MAX7219/MAX7221. The chip decodes digits
// itself (Code B font), so only digits, blanks, minus signs and decimal points
// are shown.
package max7219

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/GermanBionicSystems/ledsniffer/textsink"
)

const (
	_REGISTER_DECODE_MODE  byte = 0x9
	_REGISTER_INTENSITY    byte = 0xa
	_REGISTER_SCAN_LIMIT   byte = 0xb
	_REGISTER_SHUTDOWN     byte = 0xc
	_REGISTER_DISPLAY_TEST byte = 0xf

	// Value to write to a Code B Font decoded register to blank out the
	// digit.
	ClearDigit byte = 0x0f
	// Value to write for a minus sign symbol
	MinusSign byte = 0x0a
	// To turn the decimal point on for a digit display, OR the value of the
	// digit with DecimalPoint
	DecimalPoint byte = 0x80

	decodeB byte = 0xff
)

// Dev is a Maxim MAX7219/MAX7221 numeric display showing the remaining time.
type Dev struct {
	conn spi.Conn
	// The number of digits in this display.
	digits byte

	mu    sync.Mutex
	value string
}

// init puts the display in the default mode. The default is to
// clear the display, set intensity to middle, and set Decode
// to Code B on all digits.
func (d *Dev) init() error {
	var initCommands = [][]byte{
		{_REGISTER_DISPLAY_TEST, 0x0},
		{_REGISTER_SHUTDOWN, 0x00},
		{_REGISTER_INTENSITY, 0x08},
		{_REGISTER_SCAN_LIMIT, d.digits - 1},
		{_REGISTER_SHUTDOWN, 0x01},
		{_REGISTER_DECODE_MODE, decodeB}}

	for _, cmd := range initCommands {
		if err := d.sendCommand(cmd[0], cmd[1]); err != nil {
			return err
		}
	}
	return d.Clear()
}

// sendCommand writes to a data register or command register.
// Data registers are 1-8, and command registers are > 8.
func (d *Dev) sendCommand(register, data byte) error {
	return d.conn.Tx([]byte{register, data}, nil)
}

// NewSPI creates a new Max7219 using the specified spi.Port. numDigits is the
// number of digits wired to the chip.
func NewSPI(p spi.Port, numDigits int) (*Dev, error) {
	if numDigits <= 0 || numDigits > 8 {
		return nil, errors.New("max7219: invalid value for number of digits")
	}

	// It works in Mode0, Mode2 and Mode3.
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("max7219: %w", err)
	}
	d := &Dev{conn: c, digits: byte(numDigits)}
	if err := d.init(); err != nil {
		return nil, fmt.Errorf("max7219: %w", err)
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("MAX7219{%s, %d digits}", d.conn, d.digits)
}

// Halt implements conn.Resource.
//
// It puts the chip in shutdown mode, which blanks the display.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sendCommand(_REGISTER_SHUTDOWN, 0x00)
}

// Clear erases the content of all display segments.
func (d *Dev) Clear() error {
	return d.Write(nil)
}

// SetIntensity controls the brightness of the display. The allowed range for
// intensity is from 0-15. Keep in mind that the brighter display, the more
// current drawn.
func (d *Dev) SetIntensity(intensity byte) error {
	return d.sendCommand(_REGISTER_INTENSITY, intensity&0x0f)
}

// TestDisplay turns on the 7219 display mode which set all segments on,
// and the intensity to maximum.
func (d *Dev) TestDisplay(on bool) error {
	if on {
		return d.sendCommand(_REGISTER_DISPLAY_TEST, 1)
	}
	return d.sendCommand(_REGISTER_DISPLAY_TEST, 0)
}

// convertBytes converts ascii characters into their appropriate CodeB
// representations. Refer to the datasheet.
func convertBytes(bytes []byte) []byte {
	newBytes := make([]byte, 0, len(bytes))
	for _, c := range bytes {
		if c >= '0' && c <= '9' {
			newBytes = append(newBytes, c-'0')
		} else {
			switch c {
			case '-':
				newBytes = append(newBytes, MinusSign)
			case '.':
				if len(newBytes) > 0 {
					// A decimal point is OR'd onto the previous
					// digit to turn it on.
					newBytes[len(newBytes)-1] |= DecimalPoint
				}
			case 'E':
				newBytes = append(newBytes, 0xb)
			case 'H':
				newBytes = append(newBytes, 0xc)
			case 'L':
				newBytes = append(newBytes, 0xd)
			case 'P':
				newBytes = append(newBytes, 0xe)
			default:
				newBytes = append(newBytes, ClearDigit)
			}
		}
	}
	return newBytes
}

// Write sends ASCII data to the display, right aligned. Characters that Code B
// cannot show are blanked; the leftmost characters are dropped when the text
// is longer than the display.
func (d *Dev) Write(bytes []byte) error {
	bytes = convertBytes(bytes)
	if len(bytes) > int(d.digits) {
		bytes = bytes[len(bytes)-int(d.digits):]
	}
	w := make([]byte, 2)
	// Digit registers are numbered from the right.
	pad := int(d.digits) - len(bytes)
	for digit := d.digits; digit > 0; digit-- {
		w[0] = digit
		w[1] = ClearDigit
		if ix := int(d.digits-digit) - pad; ix >= 0 {
			w[1] = bytes[ix]
		}
		if err := d.conn.Tx(w, nil); err != nil {
			return err
		}
	}
	return nil
}

// Value implements textsink.Sink.
func (d *Dev) Value() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Publish implements textsink.Sink.
//
// v is a remaining time as formatted by the novotronic package.
func (d *Dev) Publish(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.value = v
	if err := d.Write([]byte(FormatTime(v))); err != nil {
		log.Printf("max7219: %v", err)
	}
}

// FormatTime converts a remaining time string to what fits on a numeric
// display: "1h 23m" becomes "1.23", "45 min" becomes "45" and the fault
// marker "---" is kept. Anything else is blank.
func FormatTime(v string) string {
	var h, m int
	if n, err := fmt.Sscanf(v, "%dh %dm", &h, &m); err == nil && n == 2 {
		return fmt.Sprintf("%d.%02d", h, m)
	}
	if n, err := fmt.Sscanf(v, "%d min", &m); err == nil && n == 1 {
		return fmt.Sprintf("%d", m)
	}
	if strings.TrimSpace(v) == "---" {
		return "---"
	}
	return ""
}

var _ fmt.Stringer = &Dev{}
var _ textsink.Sink = &Dev{}
