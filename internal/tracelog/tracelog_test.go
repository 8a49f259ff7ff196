// Copyright 2024 The gojvm authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

package tracelog

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Debugf("hidden %d", 1)
	l.Infof("hidden %d", 2)
	l.Warnf("shown %d", 3)
	l.Errorf("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("filtered-out levels leaked into output: %q", out)
	}
	if !strings.Contains(out, "shown 3") || !strings.Contains(out, "shown 4") {
		t.Fatalf("expected levels missing from output: %q", out)
	}
}

func TestSetLevelWidensFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelError)
	l.Infof("not yet shown")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing logged before SetLevel, got %q", buf.String())
	}

	l.SetLevel(LevelInfo)
	l.Infof("now shown")
	if !strings.Contains(buf.String(), "now shown") {
		t.Fatalf("expected message after SetLevel, got %q", buf.String())
	}
}
