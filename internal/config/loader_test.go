package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
baseURL: https://lumen.example.com
requestTimeout: 10s
retryAttempts: 5
credentialStorage: file
credentialPath: /tmp/cred.json
connectivityInterval: 30s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://lumen.example.com", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.RetryAttempts)
	assert.Equal(t, StorageFile, cfg.CredentialStorage)
	assert.Equal(t, "/tmp/cred.json", cfg.CredentialPath)
	assert.Equal(t, 30*time.Second, cfg.ConnectivityInterval)
}

func TestLoad_PartialConfigFallsBackToDefaults(t *testing.T) {
	path := writeConfig(t, `baseURL: http://localhost:8080`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)

	def := DefaultConfig()
	assert.Equal(t, def.RequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, def.RetryAttempts, cfg.RetryAttempts)
	assert.Equal(t, def.CredentialStorage, cfg.CredentialStorage)
	assert.Equal(t, def.ConnectivityInterval, cfg.ConnectivityInterval)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("LUMEN_TEST_HOST", "env.example.com")
	path := writeConfig(t, `baseURL: https://${LUMEN_TEST_HOST}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.BaseURL)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad scheme", `baseURL: ftp://example.com`},
		{"no host", `baseURL: "https://"`},
		{"unknown storage", `credentialStorage: papyrus`},
		{"malformed yaml", `baseURL: [`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadOrDefault_MissingImplicitFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOrDefault_MissingExplicitFileIsAnError(t *testing.T) {
	_, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err, "a path the user asked for must exist")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.RetryAttempts = 0
	assert.Error(t, cfg.Validate())
}
