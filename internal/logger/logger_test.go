package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWriterPrintf(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf)

	log.Printf("found %s after %d tries", "wit1q", 42)
	if err := log.Sync(); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "found wit1q after 42 tries") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Errorf("output %q missing level", out)
	}
}

func TestSetVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf)

	log.Debugf("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output before SetVerbose: %q", buf.String())
	}

	log.SetVerbose(true)
	log.Debugf("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug output missing after SetVerbose: %q", buf.String())
	}
}
