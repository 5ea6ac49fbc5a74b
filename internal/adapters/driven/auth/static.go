package auth

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
)

// Ensure StaticAcquirer implements the interface.
var _ driven.CredentialAcquirer = (*StaticAcquirer)(nil)

// StaticAcquirer hands out pre-provisioned tokens, for headless hosts where
// consent happened elsewhere. With only a refresh token it refreshes once
// to obtain an access token.
type StaticAcquirer struct {
	accessToken  string
	refreshToken string
	refresher    driven.TokenRefresher
}

// NewStaticAcquirer creates the pre-provisioned token strategy.
func NewStaticAcquirer(accessToken, refreshToken string, refresher driven.TokenRefresher) *StaticAcquirer {
	return &StaticAcquirer{
		accessToken:  accessToken,
		refreshToken: refreshToken,
		refresher:    refresher,
	}
}

// Acquire returns the configured tokens as a credential granting scopes.
func (a *StaticAcquirer) Acquire(
	ctx context.Context, cfg domain.ClientConfig, scopes []string,
) (*domain.Credential, error) {
	switch {
	case a.accessToken != "":
		return &domain.Credential{
			AccessToken:  a.accessToken,
			RefreshToken: a.refreshToken,
			TokenType:    "Bearer",
			Scopes:       append([]string(nil), scopes...),
		}, nil
	case a.refreshToken != "":
		cred, err := a.refresher.Refresh(ctx, cfg, domain.Credential{
			RefreshToken: a.refreshToken,
			Scopes:       scopes,
		})
		if err != nil {
			return nil, err
		}
		if cred.RefreshToken == "" {
			cred.RefreshToken = a.refreshToken
		}
		return cred, nil
	default:
		return nil, fmt.Errorf("%w: static flow configured without auth.access_token or auth.refresh_token",
			domain.ErrAuthFlowRequired)
	}
}
