package google

import (
	"golang.org/x/oauth2"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// NewTokenSource creates an oauth2.TokenSource that always returns cred's
// access token. Refresh is owned by the credential manager, so the source
// never renews on its own; a 401 travels back as domain.ErrCredentialInvalid.
func NewTokenSource(cred *domain.Credential) oauth2.TokenSource {
	tokenType := cred.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cred.AccessToken,
		TokenType:   tokenType,
	})
}
