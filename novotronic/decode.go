// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package novotronic

import (
	"strings"

	"github.com/GermanBionicSystems/ledsniffer/mc14489"
)

// Labels produced for the machine states that replace the program phase.
const (
	LabelDoorOpen = "Door open"
	LabelFault    = "Fault"
)

// State is the condition of the machine as shown by the left display.
type State int

const (
	Normal State = iota
	DoorOpen
	Fault
)

func (s State) String() string {
	switch s {
	case DoorOpen:
		return LabelDoorOpen
	case Fault:
		return LabelFault
	default:
		return "Normal"
	}
}

// DecodeState classifies the machine from the registers of the left chip.
// The controller blanks the display while the door is open and shows a dash
// in the first digit on fault.
func DecodeState(left mc14489.Registers) State {
	if left.Off() {
		return DoorOpen
	}
	if left.Digits()[0] == '-' {
		return Fault
	}
	return Normal
}

// FormatTime returns the remaining program time shown on the left chip,
// e.g. "1h 25m" or "45 min". A blank display yields " " and a fault "---".
func FormatTime(left mc14489.Registers) string {
	if left.Off() {
		return " "
	}
	d := left.Digits()
	if d[0] == '-' {
		return "---"
	}
	if d[2] == ' ' {
		return " "
	}

	var b strings.Builder
	hasHours := d[0] != ' '
	if hasHours {
		b.WriteByte(d[0])
		b.WriteString("h ")
	}
	for _, c := range d[1:] {
		if c != ' ' {
			b.WriteByte(c)
		}
	}
	if hasHours {
		b.WriteString("m")
	} else {
		b.WriteString(" min")
	}
	return b.String()
}

// Progress extracts the program phase code from the right display register:
// bits 12-15 moved to bits 4-7, combined with bits 0-2.
func Progress(display uint32) uint32 {
	return (display&0xF000)>>8 | display&0x7
}

// Centrifuge extracts the spin speed selector, bits 17-22 of the right
// display register shifted down by 16.
func Centrifuge(display uint32) uint32 {
	return (display & 0x7E0000) >> 16
}

// PhaseLabel returns the name of a progress code. digits is the left
// display, which tells a finished program apart from an idle machine.
func PhaseLabel(progress uint32, digits mc14489.Digits) (string, bool) {
	switch progress {
	case 0x10:
		return "Pre-washing", true
	case 0x20:
		return "Washing", true
	case 0x40:
		return "Rinsing", true
	case 0x80:
		return "Paused Rinse", true
	case 0x01:
		return "Pumping", true
	case 0x02:
		return "Spinning", true
	case 0x04:
		if digits == (mc14489.Digits{' ', ' ', '0'}) {
			return "Finished", true
		}
		return "Idle", true
	case 0x00:
		return "Ready", true
	default:
		return "", false
	}
}

// CentrifugeLabel returns the spin speed for a centrifuge selector.
func CentrifugeLabel(field uint32) (string, bool) {
	switch field {
	case 0x02:
		return "Ø 1600", true
	case 0x04:
		return "Ø 1400", true
	case 0x08:
		return "Ø 1200", true
	case 0x50:
		return "Ø 900", true
	case 0x40:
		return "Ø 600", true
	case 0x30:
		return "Ø 400", true
	case 0x20:
		return "Ø Rinse-pause", true
	case 0x10:
		return "Ø No", true
	default:
		return "", false
	}
}

// options maps right display register bits to program option labels, in
// output order.
var options = [...]struct {
	mask  uint32
	label string
}{
	{0x000100, "Pre-wash"},
	{0x000040, "Short"},
	{0x000080, "Wasser Plus"},
	{0x010000, "Summer"},
}

// FormatState describes the machine: the state or program phase, the spin
// speed and the selected options, joined with ", ".
func FormatState(left, right mc14489.Registers) string {
	labels := make([]string, 0, 2+len(options))

	switch DecodeState(left) {
	case DoorOpen:
		labels = append(labels, LabelDoorOpen)
	case Fault:
		labels = append(labels, LabelFault)
	default:
		if l, ok := PhaseLabel(Progress(right.Display), left.Digits()); ok {
			labels = append(labels, l)
		}
	}

	if l, ok := CentrifugeLabel(Centrifuge(right.Display)); ok {
		labels = append(labels, l)
	}

	for _, o := range options {
		if right.Display&o.mask != 0 {
			labels = append(labels, o.label)
		}
	}
	return strings.Join(labels, ", ")
}
