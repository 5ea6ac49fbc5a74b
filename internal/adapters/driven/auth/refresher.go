package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
)

// Ensure OAuthRefresher implements the interface.
var _ driven.TokenRefresher = (*OAuthRefresher)(nil)

// OAuthRefresher renews access tokens with the refresh_token grant.
type OAuthRefresher struct {
	httpClient *http.Client
}

// NewOAuthRefresher creates a refresher. A nil client uses a client with a
// 30 second timeout.
func NewOAuthRefresher(httpClient *http.Client) *OAuthRefresher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &OAuthRefresher{httpClient: httpClient}
}

// Refresh exchanges cred's refresh token for a new access token.
// Any failure, whether the server rejected the grant or could not be
// reached, is reported as domain.ErrRefreshFailed.
func (r *OAuthRefresher) Refresh(
	ctx context.Context, cfg domain.ClientConfig, cred domain.Credential,
) (*domain.Credential, error) {
	if !cred.HasRefreshToken() {
		return nil, fmt.Errorf("%w: no refresh token", domain.ErrRefreshFailed)
	}

	conf := oauthConfig(cfg, "", cred.Scopes)
	// An empty access token forces the token source to hit the endpoint.
	src := conf.TokenSource(withHTTPClient(ctx, r.httpClient), &oauth2.Token{
		RefreshToken: cred.RefreshToken,
	})

	tok, err := src.Token()
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrRefreshFailed, rerr.ErrorCode, rerr.ErrorDescription)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrRefreshFailed, err)
	}

	return credentialFromToken(tok, cred.Scopes), nil
}
