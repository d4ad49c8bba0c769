// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package statusweb provides an HTTP request handler publishing the decoded
// washing machine status. Client requests get the current status and are
// updated further on every change.
//
// The stream uses "multipart/x-mixed-replace", the same mechanism MJPEG
// cameras use, so a browser or `curl -N` shows live updates without
// polling. Each part is a JSON document by default; plain text can be
// selected via Options.Format or the "format" URL parameter. "?once=1"
// returns a single document and closes the response.
package statusweb

import (
	"net/http"
	"sync"
	"time"

	"github.com/GermanBionicSystems/ledsniffer/textsink"
)

// Options for statusweb servers.
type Options struct {
	// Format specifies the document format to send to clients.
	Format Format
}

// Status is the document sent to clients.
type Status struct {
	Time    string    `json:"time"`
	State   string    `json:"state"`
	Updated time.Time `json:"updated"`
}

type Server struct {
	defaultFormat Format
	now           func() time.Time

	mu       sync.Mutex
	status   Status
	clients  map[*client]struct{}
	snapshot map[Format][]byte
}

var _ http.Handler = (*Server)(nil)

// New creates a new status server instance.
func New(opt *Options) *Server {
	s := &Server{
		now:      time.Now,
		clients:  map[*client]struct{}{},
		snapshot: map[Format][]byte{},
	}
	if opt != nil {
		s.defaultFormat = opt.Format
	}
	return s
}

// String returns the name of the server.
func (s *Server) String() string {
	return "StatusWeb"
}

// Halt implements conn.Resource and terminates all running client requests
// asynchronously.
func (s *Server) Halt() error {
	s.mu.Lock()
	s.terminateClientsLocked()
	s.mu.Unlock()

	return nil
}

// Status returns the last published status.
func (s *Server) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Time returns the sink for the remaining time.
func (s *Server) Time() textsink.Sink {
	return &field{s: s, get: func(st *Status) *string { return &st.Time }}
}

// State returns the sink for the machine state.
func (s *Server) State() textsink.Sink {
	return &field{s: s, get: func(st *Status) *string { return &st.State }}
}

type field struct {
	s   *Server
	get func(*Status) *string
}

func (f *field) Value() string {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return *f.get(&f.s.status)
}

func (f *field) Publish(v string) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	*f.get(&f.s.status) = v
	f.s.status.Updated = f.s.now()
	f.s.statusChangedLocked()
}

var _ textsink.Sink = &field{}
