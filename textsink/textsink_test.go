// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package textsink

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPublishChanged(t *testing.T) {
	m := &Memory{}
	for _, v := range []string{"a", "a", "b", "b", "a"} {
		PublishChanged(m, v)
	}
	if diff := cmp.Diff(m.History(), []string{"a", "b", "a"}); diff != "" {
		t.Errorf("History() (-got +want):\n%s", diff)
	}
	if m.Value() != "a" {
		t.Errorf("Value()=%q", m.Value())
	}
}

func TestFunc(t *testing.T) {
	var got []string
	f := &Func{F: func(v string) { got = append(got, v) }}
	f.Publish("x")
	if f.Value() != "x" || len(got) != 1 {
		t.Errorf("Value()=%q calls=%d", f.Value(), len(got))
	}
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	l := NewLog("time", log.New(&buf, "", 0))
	l.Publish("45 min")
	if !strings.Contains(buf.String(), `time: "45 min"`) {
		t.Errorf("log output %q", buf.String())
	}
	if l.Value() != "45 min" {
		t.Errorf("Value()=%q", l.Value())
	}
}

func TestTee(t *testing.T) {
	a, b := &Memory{}, &Memory{}
	b.Publish("same")
	tee := NewTee(a, nil, b)
	tee.Publish("same")
	tee.Publish("next")
	if diff := cmp.Diff(a.History(), []string{"same", "next"}); diff != "" {
		t.Errorf("a (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(b.History(), []string{"same", "next"}); diff != "" {
		t.Errorf("b (-got +want):\n%s", diff)
	}
	if tee.Value() != "next" {
		t.Errorf("Value()=%q", tee.Value())
	}
}
