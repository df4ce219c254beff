package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitVerbose(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Verbose: true, Stderr: &buf})

	Debug("debug message")
	Warn("warn message")

	out := buf.String()
	if !strings.Contains(out, "debug message") {
		t.Errorf("verbose output missing debug message:\n%s", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("output missing warn message:\n%s", out)
	}
}

func TestInitQuiet(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Stderr: &buf})

	Debug("debug message")
	Info("info message")
	Warn("warn message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("quiet output includes sub-warn messages:\n%s", out)
	}
	if !strings.Contains(out, "warn message") {
		t.Errorf("output missing warn message:\n%s", out)
	}
}

func TestInitInteractiveSuppressesVerbose(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Verbose: true, Interactive: true, Stderr: &buf})

	Debug("debug message")

	if strings.Contains(buf.String(), "debug message") {
		t.Errorf("interactive output includes debug message:\n%s", buf.String())
	}
}

func TestInitJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{JSONFormat: true, Stderr: &buf})

	Error("boom")

	if !strings.Contains(buf.String(), `"msg":"boom"`) {
		t.Errorf("JSON output missing msg field:\n%s", buf.String())
	}
}

func TestLoggerAccessor(t *testing.T) {
	Init(Options{Stderr: &bytes.Buffer{}})
	if Logger() == nil {
		t.Fatal("Logger() = nil after Init")
	}
}
