package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseLevel(tc.input); got != tc.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	if LevelWarn.String() != "WARN" {
		t.Errorf("LevelWarn.String() = %q", LevelWarn.String())
	}
	if Level(42).String() != "UNKNOWN" {
		t.Errorf("Level(42).String() = %q", Level(42).String())
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo)
	l.SetOutput(&buf)

	l.Debug("hidden %d", 1)
	l.Info("shown %d", 2)
	l.Warn("careful %s", "now")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
	if !strings.Contains(out, "INFO shown 2") {
		t.Errorf("missing info line: %q", out)
	}
	if !strings.Contains(out, "WARN careful now") {
		t.Errorf("missing warn line: %q", out)
	}

	buf.Reset()
	l.SetLevel(LevelDebug)
	l.Debug("visible")
	if !strings.Contains(buf.String(), "DEBUG visible") {
		t.Errorf("debug not written after SetLevel: %q", buf.String())
	}
	if !l.Enabled(LevelDebug) {
		t.Error("Enabled(LevelDebug) = false after SetLevel(LevelDebug)")
	}
}

func TestLoggerWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo)
	l.SetOutput(&buf)

	child := l.With("run", "abc123")
	child.Info("transition started")

	out := buf.String()
	if !strings.Contains(out, "transition started") || !strings.Contains(out, "abc123") {
		t.Errorf("child output missing message or field: %q", out)
	}

	buf.Reset()
	l.SetLevel(LevelError)
	child.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("child should share parent level, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing %s", "here")
	if l.Enabled(LevelError) {
		t.Error("Discard logger should not be enabled at any level")
	}
	l.With("k", "v").Warn("still nothing")
}
