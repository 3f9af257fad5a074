package cmd

import (
	"fmt"

	"lumen/internal/auth"
	"lumen/internal/client"
	"lumen/internal/config"
	"lumen/internal/credstore"
	"lumen/internal/netcheck"
	"lumen/pkg/logging"
)

// app bundles the wired client subsystem for one CLI invocation.
type app struct {
	cfg     *config.Config
	store   credstore.Store
	auth    *auth.Authenticator
	api     *client.API
	monitor *netcheck.Monitor
}

// buildApp wires config, credential store, token authority, connectivity
// monitor and executor together. The executor is created before the
// authenticator because the sign-in exchange runs through it; the credential
// source is bound afterwards.
func buildApp(withConnectivity bool) (*app, error) {
	cfg, err := config.LoadOrDefault(flagConfigPath)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	var opts []client.ExecutorOption
	var monitor *netcheck.Monitor
	if withConnectivity {
		monitor, err = netcheck.NewMonitor(cfg.BaseURL, cfg.ConnectivityInterval)
		if err != nil {
			return nil, fmt.Errorf("failed to start connectivity monitor: %w", err)
		}
		opts = append(opts, client.WithConnectivity(monitor))
	}

	exec := client.NewExecutor(cfg, opts...)
	api := client.NewAPI(exec)
	authn := auth.NewAuthenticator(store, api)
	exec.BindCredentialSource(authn)

	return &app{cfg: cfg, store: store, auth: authn, api: api, monitor: monitor}, nil
}

// Close releases background resources.
func (a *app) Close() {
	if a.monitor != nil {
		a.monitor.Stop()
	}
}

// buildStore selects the credential backend from configuration, degrading
// from keyring to file storage when no platform keyring is usable.
func buildStore(cfg *config.Config) (credstore.Store, error) {
	switch cfg.CredentialStorage {
	case config.StorageMemory:
		return credstore.NewMemoryStore(), nil
	case config.StorageFile:
		return credstore.NewFileStore(cfg.CredentialPath)
	default:
		ks := credstore.NewKeyringStore()
		if ks.Available() {
			return ks, nil
		}
		logging.Warn("CLI", "Platform keyring unavailable, falling back to file storage")
		return credstore.NewFileStore(cfg.CredentialPath)
	}
}
