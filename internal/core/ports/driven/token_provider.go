package driven

import (
	"context"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// CredentialAcquirer obtains a brand-new credential, usually through user
// consent. Which strategy is used (interactive browser flow, pre-provisioned
// tokens, or none) is decided at startup.
type CredentialAcquirer interface {
	// Acquire returns a credential granting scopes.
	// Returns domain.ErrAuthFlowRequired if consent cannot be obtained in the
	// current context.
	Acquire(ctx context.Context, cfg domain.ClientConfig, scopes []string) (*domain.Credential, error)
}

// TokenRefresher exchanges a refresh token for a new access token.
type TokenRefresher interface {
	// Refresh returns the renewed credential. The result may omit the refresh
	// token and scopes when the authorization server does not resend them.
	// Returns domain.ErrRefreshFailed on rejection or transport failure.
	Refresh(ctx context.Context, cfg domain.ClientConfig, cred domain.Credential) (*domain.Credential, error)
}
