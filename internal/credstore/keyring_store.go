package credstore

import (
	"encoding/json"
	"sync"

	"github.com/zalando/go-keyring"

	"lumen/pkg/apierror"
	"lumen/pkg/logging"
)

const (
	// keyringService is the fixed namespace under which the credential
	// record is stored in the platform keyring.
	keyringService = "lumen"

	// keyringAccount is the entry name for the credential record.
	keyringAccount = "credential"
)

// KeyringStore persists the credential in the platform secure store:
// Keychain on macOS, Credential Manager on Windows, Secret Service on Linux.
// The three logical fields (token, expiration, user) travel as one JSON
// record so the all-or-nothing invariant holds per entry write.
type KeyringStore struct {
	mu      sync.RWMutex
	service string
	account string
}

// NewKeyringStore creates a keyring-backed credential store.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{service: keyringService, account: keyringAccount}
}

// Available reports whether the platform keyring can be used at all.
// A missing entry still counts as available.
func (s *KeyringStore) Available() bool {
	_, err := keyring.Get(s.service, s.account)
	return err == nil || err == keyring.ErrNotFound
}

// Save stores the credential record, replacing any prior value.
func (s *KeyringStore) Save(cred *Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(cred)
	if err != nil {
		return apierror.Wrap(apierror.KindStorageFault, err, "failed to marshal credential")
	}
	if err := keyring.Set(s.service, s.account, string(data)); err != nil {
		return apierror.Wrap(apierror.KindStorageFault, err, "keyring rejected credential write")
	}

	logging.Debug("CredStore", "Persisted credential to keyring for %s", cred.User.Email)
	return nil
}

// Load reads the stored credential. Returns (nil, nil) when no entry exists
// or the entry holds a partial record.
func (s *KeyringStore) Load() (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	secret, err := keyring.Get(s.service, s.account)
	if err != nil {
		if err == keyring.ErrNotFound {
			return nil, nil
		}
		return nil, apierror.Wrap(apierror.KindStorageFault, err, "keyring read failed")
	}

	var cred Credential
	if err := json.Unmarshal([]byte(secret), &cred); err != nil {
		return nil, apierror.Wrap(apierror.KindStorageFault, err, "failed to parse keyring credential")
	}
	if !cred.Complete() {
		return nil, nil
	}
	return &cred, nil
}

// Clear removes the credential entry. A missing entry is not an error.
func (s *KeyringStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := keyring.Delete(s.service, s.account); err != nil && err != keyring.ErrNotFound {
		return apierror.Wrap(apierror.KindStorageFault, err, "keyring delete failed")
	}
	return nil
}
