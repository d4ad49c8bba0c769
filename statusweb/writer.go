// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package statusweb

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"mime"
	"strconv"
)

// randomBoundary generates a MIME multipart boundary compatible with RFC 2046
// (section 5.1.1).
func randomBoundary() string {
	var buf [34]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%x", buf[:])
}

type partWriter struct {
	u        io.Writer
	boundary string
	started  bool
}

func newPartWriter(u io.Writer) *partWriter {
	return &partWriter{
		u:        u,
		boundary: randomBoundary(),
	}
}

// contentType returns the Content-Type of the whole stream.
func (w *partWriter) contentType() string {
	return mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{
		"boundary": w.boundary,
	})
}

// writePart sends a single part of a MIME multipart entity, ensuring it's
// fully written by the time the function returns.
//
// "mime/multipart".Writer only writes the closing boundary on Close, so a
// part would not be complete for the client until the next one starts.
func (w *partWriter) writePart(mediaType string, body []byte) error {
	var buf bytes.Buffer

	if !w.started {
		fmt.Fprintf(&buf, "--%s\r\n", w.boundary)
		w.started = true
	}

	fmt.Fprintf(&buf, "Content-Type: %s\r\n", mime.FormatMediaType(mediaType, map[string]string{"charset": "utf-8"}))
	fmt.Fprintf(&buf, "Content-Length: %s\r\n\r\n", strconv.Itoa(len(body)))
	buf.Write(body)
	fmt.Fprintf(&buf, "\r\n--%s\r\n", w.boundary)

	_, err := buf.WriteTo(w.u)
	return err
}
