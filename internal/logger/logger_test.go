package logger

import (
	"bytes"
	"os"
	"testing"
)

func TestSetVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("refreshing credential for %s", "calendar")

	if got := buf.String(); got != "[DEBUG] refreshing credential for calendar\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")

	if buf.Len() > 0 {
		t.Error("expected no output when verbose is disabled")
	}
}

func TestSection(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)

	Section("Hidden")
	if buf.Len() > 0 {
		t.Error("expected no section header when verbose is disabled")
	}

	SetVerbose(true)
	Section("Credential")
	if got := buf.String(); got != "\n=== Credential ===\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestLevels_AlwaysPrinted(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Info("listening on %s", "127.0.0.1:9000")
	Warn("refresh failed: %v", "boom")
	Error("shutdown: %v", "timeout")

	want := "[INFO] listening on 127.0.0.1:9000\n" +
		"[WARN] refresh failed: boom\n" +
		"[ERROR] shutdown: timeout\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestOutput(t *testing.T) {
	defer SetOutput(os.Stderr)

	var buf bytes.Buffer
	SetOutput(&buf)
	if Output() != &buf {
		t.Error("expected Output to return the configured writer")
	}
}
