package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"lumen/pkg/apierror"
	"lumen/pkg/logging"
)

// DefaultCredentialPath is the default location of the credential file,
// relative to the user's home directory.
const DefaultCredentialPath = ".config/lumen/credential.json"

// FileStore persists the credential as a single JSON record on disk.
//
// SECURITY: the file holds a bearer token. It is written with 0600
// permissions inside a 0700 directory, and writes go through a temp file
// plus rename so a concurrent reader never sees a torn record.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates a file-backed credential store at the given path.
// An empty path selects DefaultCredentialPath under the home directory.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, DefaultCredentialPath)
	}
	return &FileStore{path: path}, nil
}

// Path returns the location of the credential file.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the credential record, replacing any prior value.
func (s *FileStore) Save(cred *Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return apierror.Wrap(apierror.KindStorageFault, err, "failed to create credential directory")
	}

	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return apierror.Wrap(apierror.KindStorageFault, err, "failed to marshal credential")
	}

	// Write-then-rename keeps the record atomic for concurrent readers.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return apierror.Wrap(apierror.KindStorageFault, err, "failed to write credential file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return apierror.Wrap(apierror.KindStorageFault, err, "failed to replace credential file")
	}

	logging.Debug("CredStore", "Persisted credential for %s (expires %s)",
		cred.User.Email, cred.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"))
	return nil
}

// Load reads the stored credential. Returns (nil, nil) when the file does
// not exist or holds a partial record.
func (s *FileStore) Load() (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apierror.Wrap(apierror.KindStorageFault, err, "failed to read credential file")
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, apierror.Wrap(apierror.KindStorageFault, err, "failed to parse credential file")
	}

	// Partial records are not legal persisted values.
	if !cred.Complete() {
		return nil, nil
	}
	return &cred, nil
}

// Clear removes the credential file. Clearing an absent credential is not
// an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return apierror.Wrap(apierror.KindStorageFault, err, "failed to remove credential file")
	}
	return nil
}
