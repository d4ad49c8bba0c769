// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package statusweb

import (
	"bytes"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	for _, tc := range []struct {
		format       Format
		wantString   string
		wantMimeType string
	}{
		{
			format:       Format(-1),
			wantString:   "-1",
			wantMimeType: "application/octet-stream",
		},
		{
			wantString:   "JSON",
			wantMimeType: "application/json",
		},
		{
			format:       DefaultFormat,
			wantString:   "JSON",
			wantMimeType: "application/json",
		},
		{
			format:       Text,
			wantString:   "Text",
			wantMimeType: "text/plain",
		},
	} {
		t.Run(fmt.Sprint(tc), func(t *testing.T) {
			if got := tc.format.String(); got != tc.wantString {
				t.Errorf("String() returned %q, want %q", got, tc.wantString)
			}

			if got := tc.format.mimeType(); got != tc.wantMimeType {
				t.Errorf("mimeType() returned %q, want %q", got, tc.wantMimeType)
			}
		})
	}
}

func TestFormatFromString(t *testing.T) {
	for in, want := range map[string]Format{"json": JSON, "text": Text, "txt": Text} {
		if got, err := FormatFromString(in); err != nil || got != want {
			t.Errorf("FormatFromString(%q)=%s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := FormatFromString("png"); err == nil {
		t.Error("FormatFromString(png) should fail")
	}
}

func TestEncode(t *testing.T) {
	st := Status{Time: "7 min", State: "Spinning, Ø 1200"}
	var buf bytes.Buffer
	if err := JSON.encode(&buf, st); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), `{"time":"7 min","state":"Spinning, Ø 1200","updated":"0001-01-01T00:00:00Z"}`+"\n"; got != want {
		t.Errorf("JSON: %q, want %q", got, want)
	}
	if err := Format(7).encode(&buf, st); err == nil {
		t.Error("unknown format should fail")
	}
}
