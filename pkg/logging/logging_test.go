package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSlogLevel(t *testing.T) {
	if LevelDebug.SlogLevel() != slog.LevelDebug {
		t.Error("LevelDebug mapping")
	}
	if LogLevel(42).SlogLevel() != slog.LevelInfo {
		t.Error("unknown levels default to INFO")
	}
}

func TestInitForCLI_PlainHandler(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf, true)

	Info("Test", "hello %s", "world")
	out := buf.String()
	if !strings.Contains(out, "hello world") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "subsystem=Test") {
		t.Errorf("output missing subsystem attribute: %q", out)
	}
}

func TestInitForCLI_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf, true)

	Debug("Test", "invisible")
	Info("Test", "also invisible")
	if buf.Len() != 0 {
		t.Errorf("filtered levels leaked output: %q", buf.String())
	}

	Warn("Test", "visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("warn output missing")
	}
}

func TestTruncateToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"abcdefghijklmnop", "abcdefgh..."},
		{"short", "********"},
		{"", "********"},
		{"12345678", "********"},
	}
	for _, tt := range tests {
		if got := TruncateToken(tt.token); got != tt.want {
			t.Errorf("TruncateToken(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}
