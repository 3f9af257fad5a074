package main

import (
	"testing"

	"lumen/cmd"
)

func TestVersion(t *testing.T) {
	// Test default version
	if version != "dev" {
		t.Errorf("Expected default version to be 'dev', got %s", version)
	}

	// SetVersion must accept any build-time value without panicking.
	for _, v := range []string{"dev", "1.0.0", "v2.1.0-beta"} {
		cmd.SetVersion(v)
	}
	cmd.SetVersion(version)
}
