package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"testing"
	"time"

	"lumen/pkg/apierror"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain error", errors.New("boom"), ExitCodeError},
		{"unauthorized", apierror.New(apierror.KindUnauthorized, "sign in"), ExitCodeAuthRequired},
		{"invalid assertion", apierror.New(apierror.KindInvalidAssertion, "rejected"), ExitCodeAuthRequired},
		{"no connection", apierror.New(apierror.KindNoConnection, "offline"), ExitCodeNoConnection},
		{"server error", apierror.New(apierror.KindServerError, "boom"), ExitCodeError},
		{"wrapped classification", fmt.Errorf("create failed: %w",
			apierror.New(apierror.KindNoConnection, "offline")), ExitCodeNoConnection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getExitCode(tt.err); got != tt.want {
				t.Errorf("getExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	oldVersion := rootCmd.Version
	defer SetVersion(oldVersion)
	SetVersion("1.2.3")

	var buf bytes.Buffer
	cmd := newVersionCmd()
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)

	want := fmt.Sprintf("lumen 1.2.3 (%s/%s)\n", runtime.GOOS, runtime.GOARCH)
	if got := buf.String(); got != want {
		t.Errorf("version output = %q, want %q", got, want)
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Second, "expired"},
		{30 * time.Second, "30s remaining"},
		{5 * time.Minute, "5m remaining"},
		{90 * time.Minute, "1h30m remaining"},
		{25 * time.Hour, "25h00m remaining"},
	}
	for _, tt := range tests {
		if got := formatRemaining(tt.d); got != tt.want {
			t.Errorf("formatRemaining(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
