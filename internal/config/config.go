package config

import (
	"fmt"
	"net/url"
	"time"
)

// Storage backend names accepted for credential persistence.
const (
	StorageKeyring = "keyring"
	StorageFile    = "file"
	StorageMemory  = "memory"
)

// Config holds the client configuration: where the backend lives, how long
// requests may take, and how persistent state is kept.
type Config struct {
	// BaseURL is the root of the Lumen backend, e.g. "https://api.lumen.app".
	BaseURL string `yaml:"baseURL"`

	// RequestTimeout bounds a single dispatch attempt.
	RequestTimeout time.Duration `yaml:"requestTimeout"`

	// RetryAttempts is the retry budget per logical call.
	RetryAttempts int `yaml:"retryAttempts"`

	// CredentialStorage selects the credential backend: keyring, file or memory.
	CredentialStorage string `yaml:"credentialStorage"`

	// CredentialPath overrides the credential file location (file backend only).
	CredentialPath string `yaml:"credentialPath"`

	// ConnectivityInterval is how often the reachability probe runs.
	ConnectivityInterval time.Duration `yaml:"connectivityInterval"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:              "https://api.lumen.app",
		RequestTimeout:       30 * time.Second,
		RetryAttempts:        3,
		CredentialStorage:    StorageKeyring,
		ConnectivityInterval: 15 * time.Second,
	}
}

// Validate checks the configuration for values the client cannot work with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid baseURL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("baseURL must be http or https, got %q", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("baseURL %q has no host", c.BaseURL)
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("retryAttempts must be at least 1, got %d", c.RetryAttempts)
	}
	switch c.CredentialStorage {
	case StorageKeyring, StorageFile, StorageMemory:
	default:
		return fmt.Errorf("unknown credentialStorage %q", c.CredentialStorage)
	}
	return nil
}
