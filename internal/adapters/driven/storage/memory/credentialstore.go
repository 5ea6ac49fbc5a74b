package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore keeps the credential in process memory. The credential is
// lost on restart, so it suits the static flow and tests.
type CredentialStore struct {
	mu   sync.RWMutex
	cred *domain.Credential
}

// NewCredentialStore creates an empty in-memory credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

// Load returns a copy of the stored credential, or nil if none is stored.
func (s *CredentialStore) Load(_ context.Context) (*domain.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cred == nil {
		return nil, nil
	}
	return s.cred.Clone(), nil
}

// Save stores a copy of cred.
func (s *CredentialStore) Save(_ context.Context, cred domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred.Clone()
	return nil
}

// Delete removes the stored credential.
func (s *CredentialStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = nil
	return nil
}
