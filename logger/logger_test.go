package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":      NilLevel,
		"OFF":   NilLevel,
		"debug": DebugLevel,
		"Info":  InfoLevel,
		"WARN":  WarnLevel,
		"error": ErrorLevel,
		"fatal": FatalLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseLevel("bogus"); err == nil {
		t.Fatal("ParseLevel(bogus): want error, got nil")
	}
}

func TestNewWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(DebugLevel, &buf)
	l.WithField("archive", "a1").WithFields(Fields{"slice": 2}).Info("rotated slice")

	out := buf.String()
	if !strings.Contains(out, "rotated slice") {
		t.Fatalf("missing message in output: %q", out)
	}
	if !strings.Contains(out, "archive=a1") {
		t.Fatalf("missing field in output: %q", out)
	}
	if !strings.Contains(out, "slice=2") {
		t.Fatalf("missing field in output: %q", out)
	}
}

func TestDiscardNeverPanics(t *testing.T) {
	l := Discard()
	l.WithError(nil).Debug("ignored")
	l.Info("also ignored")
}
