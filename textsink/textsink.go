// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package textsink defines a text output channel and a few basic
// implementations.
//
// A Sink holds the last value published to it. Publishers compare against
// Value before calling Publish, so a Sink sees one Publish per change.
package textsink

import (
	"log"
	"sync"
)

// Sink receives successive values of a text output.
type Sink interface {
	// Value returns the last published value.
	Value() string
	// Publish replaces the value and performs the side effects of the sink.
	Publish(v string)
}

// Memory is a Sink that only records values. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	v       string
	history []string
}

// Value implements Sink.
func (m *Memory) Value() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.v
}

// Publish implements Sink.
func (m *Memory) Publish(v string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.v = v
	m.history = append(m.history, v)
}

// History returns every published value, oldest first.
func (m *Memory) History() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.history...)
}

// Func adapts a function to a Sink.
type Func struct {
	F func(v string)

	mu sync.Mutex
	v  string
}

// Value implements Sink.
func (f *Func) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.v
}

// Publish implements Sink.
func (f *Func) Publish(v string) {
	f.mu.Lock()
	f.v = v
	f.mu.Unlock()
	f.F(v)
}

// Log is a Sink that writes every new value as a log line.
type Log struct {
	Name string
	// Logger defaults to the standard logger.
	Logger *log.Logger

	mu sync.Mutex
	v  string
}

// NewLog returns a Sink logging values prefixed by name.
func NewLog(name string, l *log.Logger) *Log {
	return &Log{Name: name, Logger: l}
}

// Value implements Sink.
func (l *Log) Value() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.v
}

// Publish implements Sink.
func (l *Log) Publish(v string) {
	l.mu.Lock()
	l.v = v
	l.mu.Unlock()
	if l.Logger != nil {
		l.Logger.Printf("%s: %q", l.Name, v)
	} else {
		log.Printf("%s: %q", l.Name, v)
	}
}

// Tee fans a value out to several sinks. Each sink only sees values that
// differ from its own current value.
type Tee struct {
	sinks []Sink

	mu sync.Mutex
	v  string
}

// NewTee returns a Sink publishing to every non nil sink.
func NewTee(sinks ...Sink) *Tee {
	t := &Tee{}
	for _, s := range sinks {
		if s != nil {
			t.sinks = append(t.sinks, s)
		}
	}
	return t
}

// Value implements Sink.
func (t *Tee) Value() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.v
}

// Publish implements Sink.
func (t *Tee) Publish(v string) {
	t.mu.Lock()
	t.v = v
	t.mu.Unlock()
	for _, s := range t.sinks {
		PublishChanged(s, v)
	}
}

// PublishChanged publishes v to s unless it is already its value. It
// reports whether Publish was called.
func PublishChanged(s Sink, v string) bool {
	if s.Value() == v {
		return false
	}
	s.Publish(v)
	return true
}

var _ Sink = &Memory{}
var _ Sink = &Func{}
var _ Sink = &Log{}
var _ Sink = &Tee{}
