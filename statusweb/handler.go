// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package statusweb

import (
	"bytes"
	"log"
	"mime"
	"net/http"
	"net/url"
	"strconv"
)

type requestConfig struct {
	format Format
	once   bool
}

func (s *Server) configFromQuery(values url.Values) (requestConfig, error) {
	cfg := requestConfig{
		format: s.defaultFormat,
	}

	if value := values.Get("format"); value != "" {
		format, err := FormatFromString(value)
		if err != nil {
			return requestConfig{}, err
		}
		cfg.format = format
	}

	if value := values.Get("once"); value != "" {
		once, err := strconv.ParseBool(value)
		if err != nil {
			return requestConfig{}, err
		}
		cfg.once = once
	}

	return cfg, nil
}

type client struct {
	refresh   chan struct{}
	terminate chan struct{}
}

func (s *Server) statusChangedLocked() {
	clear(s.snapshot)

	for c := range s.clients {
		select {
		case c.refresh <- struct{}{}:
		default:
		}
	}
}

func (s *Server) terminateClientsLocked() {
	for c := range s.clients {
		select {
		case c.terminate <- struct{}{}:
		default:
		}
	}
}

// grabSnapshot returns the encoded current status. The returned slice must
// not be modified.
func (s *Server) grabSnapshot(format Format) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, ok := s.snapshot[format]
	if !ok {
		var buf bytes.Buffer
		if err := format.encode(&buf, s.status); err != nil {
			return nil, err
		}
		encoded = buf.Bytes()
		s.snapshot[format] = encoded
	}

	return encoded, nil
}

// ServeHTTP handles HTTP GET requests and sends a stream of status documents
// in response. The server options control the default format and clients can
// explicitly request JSON or text using the "format" parameter
// ("?format=json", "?format=text"). "?once=1" sends a single document.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.Body.Close(); err != nil {
		log.Printf("Closing request body failed: %v", err)
	}

	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	cfg, err := s.configFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if cfg.once {
		payload, err := s.grabSnapshot(cfg.format)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", mime.FormatMediaType(cfg.format.mimeType(), map[string]string{"charset": "utf-8"}))
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		_, _ = w.Write(payload)
		return
	}

	pw := newPartWriter(w)
	w.Header().Set("Content-Type", pw.contentType())

	c := &client{
		refresh:   make(chan struct{}, 1),
		terminate: make(chan struct{}, 1),
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
	}()

	for {
		payload, err := s.grabSnapshot(cfg.format)
		if err == nil {
			err = pw.writePart(cfg.format.mimeType(), payload)
		}
		if err != nil {
			// Errors cause the request to be silently terminated, the
			// headers are already sent.
			return
		}

		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}

		select {
		case <-c.refresh:
		case <-c.terminate:
			return
		case <-r.Context().Done():
			return
		}
	}
}
