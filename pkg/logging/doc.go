// Package logging provides the structured logging system for lumen.
//
// It is a thin wrapper over Go's standard slog package that adds a subsystem
// identifier to every entry and funnels all output through a single logger
// configured once at startup:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr, false)
//	logging.Info("Auth", "Signed in as %s", user.Email)
//	logging.Error("Executor", err, "Request to %s failed", path)
//
// Subsystems in use: Auth, CredStore, Executor, Netcheck, Config, CLI.
//
// Output is rendered by a tint handler (colorized, terminal-friendly) unless
// plain text output is requested.
//
// Credential values must never be logged. Use TruncateToken when a token
// needs to appear in diagnostic output at all.
package logging
