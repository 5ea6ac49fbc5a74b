package driven

import (
	"context"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// CredentialStore persists the single delegated credential.
// Implementations must write atomically so that a crash never leaves a
// partially written credential behind.
type CredentialStore interface {
	// Load returns the stored credential.
	// Returns nil, nil if no credential has been stored yet.
	Load(ctx context.Context) (*domain.Credential, error)

	// Save stores the credential, replacing any previous one.
	Save(ctx context.Context, cred domain.Credential) error

	// Delete removes the stored credential. Deleting nothing is not an error.
	Delete(ctx context.Context) error
}

// ClientConfigSource loads the OAuth application registration.
type ClientConfigSource interface {
	// Load returns the client configuration.
	// Returns domain.ErrMissingClientConfig if none is available.
	Load(ctx context.Context) (*domain.ClientConfig, error)
}
