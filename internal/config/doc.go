// Package config loads the lumen client configuration from a YAML file.
//
// The file lives at ~/.config/lumen/config.yaml by default. Environment
// variables referenced in the file are expanded, unset values fall back to
// defaults, and the result is validated before use. Configuration supplies
// the base URL, per-request timeout, retry ceiling, credential storage
// backend, and the connectivity probe interval.
package config
