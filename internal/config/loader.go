package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"lumen/pkg/logging"
)

// DefaultConfigPath is the default config file location, relative to the
// user's home directory.
const DefaultConfigPath = ".config/lumen/config.yaml"

// Load reads configuration from a YAML file. Environment variables in the
// file content are expanded before parsing, and missing values fall back to
// the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Debug("Config", "Loaded configuration from %s (baseURL=%s)", path, cfg.BaseURL)
	return cfg, nil
}

// LoadOrDefault loads the config file at path, or from the default location
// when path is empty. A missing file is not an error: the defaults are used.
func LoadOrDefault(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, DefaultConfigPath)
	}

	cfg, err := Load(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = def.RetryAttempts
	}
	if cfg.CredentialStorage == "" {
		cfg.CredentialStorage = def.CredentialStorage
	}
	if cfg.ConnectivityInterval <= 0 {
		cfg.ConnectivityInterval = def.ConnectivityInterval
	}
}
