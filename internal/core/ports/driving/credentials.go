package driving

import (
	"context"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// CredentialService manages the delegated credential on behalf of the user.
type CredentialService interface {
	// Authorize runs a full acquisition for the configured scopes and stores
	// the result, replacing any existing credential.
	Authorize(ctx context.Context) (*domain.CredentialStatus, error)

	// Status describes the stored credential without network calls.
	Status(ctx context.Context) (*domain.CredentialStatus, error)

	// Revoke deletes the stored credential.
	Revoke(ctx context.Context) error
}
