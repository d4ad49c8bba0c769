// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package novotronic

import (
	"testing"

	"github.com/GermanBionicSystems/ledsniffer/mc14489"
)

// Left chip configurations seen on the controller.
const (
	ctrlOff       = 0x00
	ctrlHex       = 0x01
	ctrlBlankHour = 0x01 | mc14489.Bank1Special
	ctrlBlankTwo  = 0x01 | mc14489.Bank1Special | mc14489.Bank2Special
	ctrlBlankLast = 0x01 | mc14489.Bank3Special
)

func TestFormatTime(t *testing.T) {
	for _, tc := range []struct {
		name string
		left mc14489.Registers
		want string
	}{
		{"off", mc14489.Registers{Control: ctrlOff, Display: 0x000321}, " "},
		{"hours", mc14489.Registers{Control: ctrlHex, Display: 0x000321}, "1h 23m"},
		{"minutes", mc14489.Registers{Control: ctrlBlankHour, Display: 0x000540}, "45 min"},
		{"single minute", mc14489.Registers{Control: ctrlBlankTwo, Display: 0x000700}, "7 min"},
		{"fault", mc14489.Registers{Control: ctrlBlankHour, Display: 0x00054D}, "---"},
		{"blank", mc14489.Registers{Control: ctrlBlankLast, Display: 0x000021}, " "},
		{"hour with blank tens", mc14489.Registers{Control: 0x01 | mc14489.Bank2Special, Display: 0x000502}, "2h 5m"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatTime(tc.left)
			if got != tc.want {
				t.Errorf("FormatTime(%s)=%q, want %q", tc.left, got, tc.want)
			}
			if again := FormatTime(tc.left); again != got {
				t.Errorf("FormatTime is not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestDecodeState(t *testing.T) {
	for _, tc := range []struct {
		left mc14489.Registers
		want State
	}{
		{mc14489.Registers{Control: ctrlOff}, DoorOpen},
		{mc14489.Registers{Control: ctrlBlankHour, Display: 0x00000D}, Fault},
		{mc14489.Registers{Control: ctrlHex, Display: 0x00000D}, Normal},
		{mc14489.Registers{Control: ctrlBlankHour, Display: 0x000540}, Normal},
	} {
		if got := DecodeState(tc.left); got != tc.want {
			t.Errorf("DecodeState(%s)=%s, want %s", tc.left, got, tc.want)
		}
	}
}

func TestFormatState(t *testing.T) {
	running := mc14489.Registers{Control: ctrlBlankHour, Display: 0x000540}
	for _, tc := range []struct {
		name        string
		left, right mc14489.Registers
		want        string
	}{
		{"washing", running, mc14489.Registers{Display: 0x042100}, "Washing, Ø 1400, Pre-wash"},
		{"pre-washing", running, mc14489.Registers{Display: 0x001000}, "Pre-washing"},
		{"rinsing", running, mc14489.Registers{Display: 0x004000}, "Rinsing"},
		{"paused rinse", running, mc14489.Registers{Display: 0x008000}, "Paused Rinse"},
		{"pumping", running, mc14489.Registers{Display: 0x000001}, "Pumping"},
		{"spinning", running, mc14489.Registers{Display: 0x080002}, "Spinning, Ø 1200"},
		{"ready", running, mc14489.Registers{Display: 0x020000}, "Ready, Ø 1600"},
		{"idle", running, mc14489.Registers{Display: 0x000004}, "Idle"},
		{"finished", mc14489.Registers{Control: ctrlBlankTwo, Display: 0x000000}, mc14489.Registers{Display: 0x000004}, "Finished"},
		{"unknown phase", running, mc14489.Registers{Display: 0x003000}, ""},
		{"all options", running, mc14489.Registers{Display: 0x5121C0}, "Washing, Ø 900, Pre-wash, Short, Wasser Plus, Summer"},
		{"door open", mc14489.Registers{Control: ctrlOff}, mc14489.Registers{Display: 0x022040}, "Door open, Ø 1600, Short"},
		{"fault", mc14489.Registers{Control: ctrlBlankHour, Display: 0x00000D}, mc14489.Registers{Display: 0x302000}, "Fault, Ø 400"},
		{"rinse pause", running, mc14489.Registers{Display: 0x204000}, "Rinsing, Ø Rinse-pause"},
		{"no spin", running, mc14489.Registers{Display: 0x100000}, "Ready, Ø No"},
		{"600", running, mc14489.Registers{Display: 0x400000}, "Ready, Ø 600"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatState(tc.left, tc.right); got != tc.want {
				t.Errorf("FormatState(%s, %s)=%q, want %q", tc.left, tc.right, got, tc.want)
			}
		})
	}
}

func TestProgressAndCentrifuge(t *testing.T) {
	if p := Progress(0xFFF0F7); p != 0xF7 {
		t.Errorf("Progress()=0x%x, want 0xf7", p)
	}
	if c := Centrifuge(0xFFFFFF); c != 0x7E {
		t.Errorf("Centrifuge()=0x%x, want 0x7e", c)
	}
	if _, ok := CentrifugeLabel(0x7E); ok {
		t.Error("0x7e is not a spin speed")
	}
	if _, ok := PhaseLabel(0x03, mc14489.Digits{}); ok {
		t.Error("0x03 is not a phase")
	}
}
