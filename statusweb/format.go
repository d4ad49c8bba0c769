// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package statusweb

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Format int

const (
	JSON Format = iota
	Text

	// DefaultFormat is the format used when not set explicitly in options or
	// as a URL parameter.
	DefaultFormat = JSON
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case Text:
		return "Text"
	default:
		return fmt.Sprint(int(f))
	}
}

func (f Format) mimeType() string {
	switch f {
	case JSON:
		return "application/json"
	case Text:
		return "text/plain"
	}

	return "application/octet-stream"
}

// FormatFromString returns the Format value for the given format name.
func FormatFromString(value string) (Format, error) {
	switch value {
	case "json":
		return JSON, nil
	case "text", "txt":
		return Text, nil
	}

	return DefaultFormat, fmt.Errorf("unrecognized format %q", value)
}

// encode renders st in format f.
func (f Format) encode(buf *bytes.Buffer, st Status) error {
	switch f {
	case JSON:
		return json.NewEncoder(buf).Encode(st)

	case Text:
		_, err := fmt.Fprintf(buf, "%s\n%s\n", st.Time, st.State)
		return err

	default:
		return fmt.Errorf("unhandled format %s", f)
	}
}
