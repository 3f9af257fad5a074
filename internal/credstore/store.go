package credstore

import (
	"sync"
)

// Store is durable storage for exactly one Credential at a time.
//
// Save overwrites any prior value; there is no versioning. Load returns
// (nil, nil) when no credential is stored. All operations are atomic with
// respect to each other: a concurrent Load never observes a half-written
// Save. Storage-layer failures surface as apierror.KindStorageFault, which
// the token authority treats as equivalent to "credential absent".
type Store interface {
	Save(cred *Credential) error
	Load() (*Credential, error)
	Clear() error
}

// MemoryStore keeps the credential in process memory only.
// Used in tests and as the storage backend when persistence is disabled.
type MemoryStore struct {
	mu   sync.RWMutex
	cred *Credential
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores a copy of the credential.
func (s *MemoryStore) Save(cred *Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *cred
	s.cred = &c
	return nil
}

// Load returns a copy of the stored credential, or (nil, nil) when absent.
func (s *MemoryStore) Load() (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.cred.Complete() {
		return nil, nil
	}
	c := *s.cred
	return &c, nil
}

// Clear removes any stored credential.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred = nil
	return nil
}
