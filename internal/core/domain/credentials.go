package domain

import "time"

// Credential is the single delegated OAuth credential shared by every
// facade operation. It is created on first acquisition, mutated on refresh
// and replaced when the required scopes change.
type Credential struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens. Without it an
	// expired credential can only be replaced by a full acquisition.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type,omitempty"`
	// Expiry is when the access token expires. Zero means it does not.
	Expiry time.Time `json:"expiry,omitempty"`
	// Scopes are the capabilities the credential was granted.
	Scopes []string `json:"scopes,omitempty"`
}

// IsExpired returns true if the access token has expired at now.
func (c *Credential) IsExpired(now time.Time) bool {
	return c.ExpiresWithin(now, 0)
}

// ExpiresWithin returns true if the access token expires before now+buffer.
// A credential with zero expiry never expires.
func (c *Credential) ExpiresWithin(now time.Time, buffer time.Duration) bool {
	if c.Expiry.IsZero() {
		return false
	}
	return !now.Add(buffer).Before(c.Expiry)
}

// HasRefreshToken returns true if a refresh token is available.
func (c *Credential) HasRefreshToken() bool {
	return c.RefreshToken != ""
}

// Covers returns true if every requested scope is granted, directly or
// through a broader scope.
func (c *Credential) Covers(scopes []string) bool {
	for _, s := range scopes {
		if !scopeGranted(c.Scopes, s) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the credential.
func (c *Credential) Clone() *Credential {
	cp := *c
	cp.Scopes = append([]string(nil), c.Scopes...)
	return &cp
}

// CredentialStatus describes the stored credential without exposing tokens.
type CredentialStatus struct {
	// Present is false when no credential has been acquired yet.
	Present bool `json:"present"`
	// Expiry is the access token expiry (zero if it never expires).
	Expiry time.Time `json:"expiry,omitempty"`
	// Expired is true if the access token has expired.
	Expired bool `json:"expired"`
	// Refreshable is true if a refresh token is stored.
	Refreshable bool `json:"refreshable"`
	// Scopes are the granted scopes.
	Scopes []string `json:"scopes,omitempty"`
}
