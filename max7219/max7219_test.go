// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package max7219

import (
	"fmt"
	"testing"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/spi/spitest"
)

func TestConvertBytes(t *testing.T) {
	testStr := "-0.123456789EHLP x"
	expected := []byte{MinusSign, 0 | DecimalPoint, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0xb, 0xc, 0xd, 0xe, 0xf, 0xf}
	converted := convertBytes([]byte(testStr))
	if len(converted) != len(expected) {
		t.Fatalf("converted bytes length %d, expected %d", len(converted), len(expected))
	}
	for ix := range len(expected) {
		if converted[ix] != expected[ix] {
			t.Errorf("error . expected 0x%x received 0x%x", expected[ix], converted[ix])
		}
	}
}

func TestConvertBytesLeadingDots(t *testing.T) {
	for _, in := range []string{".", ".."} {
		if converted := convertBytes([]byte(in)); len(converted) != 0 {
			t.Errorf("%q = %x, want nothing", in, converted)
		}
	}
	if got := convertBytes([]byte("1..")); len(got) != 1 || got[0] != 1|DecimalPoint {
		t.Errorf("\"1..\" = %x", got)
	}
}

func verifyOperations(found, expected []conntest.IO) error {
	if len(found) != len(expected) {
		return fmt.Errorf("invalid length. found length: %d expected length: %d", len(found), len(expected))
	}
	for outer := range len(expected) {
		if len(found[outer].W) != len(expected[outer].W) {
			return fmt.Errorf("op %d: found %d bytes, expected %d", outer, len(found[outer].W), len(expected[outer].W))
		}
		for inner := range len(found[outer].W) {
			if expected[outer].W[inner] != found[outer].W[inner] {
				return fmt.Errorf("data not as expected. found[%d][%d]=0x%x expected 0x%x",
					outer,
					inner,
					found[outer].W[inner],
					expected[outer].W[inner])
			}
		}
	}
	return nil
}

func TestNewSPI(t *testing.T) {
	for _, n := range []int{0, -1, 9} {
		if _, err := NewSPI(&spitest.Record{}, n); err == nil {
			t.Errorf("NewSPI(%d) should fail", n)
		}
	}
}

func TestInit(t *testing.T) {
	record := &spitest.Record{}

	if _, err := NewSPI(record, 8); err != nil {
		t.Fatal(err)
	}
	expected := []conntest.IO{
		{W: []uint8{0xf, 0x0}},  // Disable self-test
		{W: []uint8{0xc, 0x0}},  // Shutdown - Enter Shutdown Mode
		{W: []uint8{0xa, 0x8}},  // Intensity
		{W: []uint8{0xb, 0x7}},  // Scan Limit
		{W: []uint8{0xc, 0x1}},  // Shutdown - Resume Normal Mode
		{W: []uint8{0x9, 0xff}}, // Decode Mode
		{W: []uint8{0x8, 0xf}},  // Clear digits 1-8
		{W: []uint8{0x7, 0xf}},
		{W: []uint8{0x6, 0xf}},
		{W: []uint8{0x5, 0xf}},
		{W: []uint8{0x4, 0xf}},
		{W: []uint8{0x3, 0xf}},
		{W: []uint8{0x2, 0xf}},
		{W: []uint8{0x1, 0xf}}}

	if err := verifyOperations(record.Ops, expected); err != nil {
		t.Error(err)
	}
}

func TestWrite(t *testing.T) {
	record := &spitest.Record{}
	dev, err := NewSPI(record, 4)
	if err != nil {
		t.Fatal(err)
	}

	record.Ops = make([]conntest.IO, 0)
	if err := dev.Write([]byte("123456")); err != nil {
		t.Fatal(err)
	}
	expected := []conntest.IO{
		{W: []uint8{0x4, 0x3}},
		{W: []uint8{0x3, 0x4}},
		{W: []uint8{0x2, 0x5}},
		{W: []uint8{0x1, 0x6}}}
	if err := verifyOperations(record.Ops, expected); err != nil {
		t.Error(err)
	}

	record.Ops = make([]conntest.IO, 0)
	if err := dev.Write([]byte("-7")); err != nil {
		t.Fatal(err)
	}
	expected = []conntest.IO{
		{W: []uint8{0x4, 0xf}},
		{W: []uint8{0x3, 0xf}},
		{W: []uint8{0x2, MinusSign}},
		{W: []uint8{0x1, 0x7}}}
	if err := verifyOperations(record.Ops, expected); err != nil {
		t.Error(err)
	}

	// Dots with no digit before them are dropped.
	record.Ops = make([]conntest.IO, 0)
	if err := dev.Write([]byte("..")); err != nil {
		t.Fatal(err)
	}
	expected = []conntest.IO{
		{W: []uint8{0x4, ClearDigit}},
		{W: []uint8{0x3, ClearDigit}},
		{W: []uint8{0x2, ClearDigit}},
		{W: []uint8{0x1, ClearDigit}}}
	if err := verifyOperations(record.Ops, expected); err != nil {
		t.Error(err)
	}
}

func TestPublish(t *testing.T) {
	record := &spitest.Record{}
	dev, err := NewSPI(record, 4)
	if err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		in       string
		expected []conntest.IO
	}{
		{"1h 23m", []conntest.IO{
			{W: []uint8{0x4, 0xf}},
			{W: []uint8{0x3, 0x1 | DecimalPoint}},
			{W: []uint8{0x2, 0x2}},
			{W: []uint8{0x1, 0x3}}}},
		{"45 min", []conntest.IO{
			{W: []uint8{0x4, 0xf}},
			{W: []uint8{0x3, 0xf}},
			{W: []uint8{0x2, 0x4}},
			{W: []uint8{0x1, 0x5}}}},
		{"---", []conntest.IO{
			{W: []uint8{0x4, 0xf}},
			{W: []uint8{0x3, MinusSign}},
			{W: []uint8{0x2, MinusSign}},
			{W: []uint8{0x1, MinusSign}}}},
		{" ", []conntest.IO{
			{W: []uint8{0x4, 0xf}},
			{W: []uint8{0x3, 0xf}},
			{W: []uint8{0x2, 0xf}},
			{W: []uint8{0x1, 0xf}}}},
	} {
		record.Ops = make([]conntest.IO, 0)
		dev.Publish(tc.in)
		if err := verifyOperations(record.Ops, tc.expected); err != nil {
			t.Errorf("Publish(%q): %v", tc.in, err)
		}
		if dev.Value() != tc.in {
			t.Errorf("Value()=%q, want %q", dev.Value(), tc.in)
		}
	}
}

func TestFormatTime(t *testing.T) {
	for in, want := range map[string]string{
		"1h 23m": "1.23",
		"2h 5m":  "2.05",
		"45 min": "45",
		"7 min":  "7",
		"---":    "---",
		" ":      "",
		"":       "",
	} {
		if got := FormatTime(in); got != want {
			t.Errorf("FormatTime(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestCommand(t *testing.T) {
	record := &spitest.Record{}
	dev, err := NewSPI(record, 8)
	if err != nil {
		t.Fatal(err)
	}
	record.Ops = make([]conntest.IO, 0)
	if err := dev.SetIntensity(0x1b); err != nil {
		t.Error(err)
	}
	if err := dev.TestDisplay(true); err != nil {
		t.Error(err)
	}
	if err := dev.Halt(); err != nil {
		t.Error(err)
	}
	expected := []conntest.IO{
		{W: []uint8{0xa, 0xb}}, // Intensity is masked to 4 bits.
		{W: []uint8{0xf, 0x1}},
		{W: []uint8{0xc, 0x0}}}
	if err := verifyOperations(record.Ops, expected); err != nil {
		t.Error(err)
	}
}
