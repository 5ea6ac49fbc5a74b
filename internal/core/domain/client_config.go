package domain

// ClientConfig stores the OAuth application credentials from the Google
// developer console. It is read-only input to the credential lifecycle.
type ClientConfig struct {
	// ClientID is the OAuth client ID.
	ClientID string `json:"client_id"`
	// ClientSecret is the OAuth client secret.
	ClientSecret string `json:"client_secret"`
	// AuthURL is the authorization endpoint.
	AuthURL string `json:"auth_url,omitempty"`
	// TokenURL is the token exchange endpoint.
	TokenURL string `json:"token_url,omitempty"`
	// RedirectURL is the registered redirect URL, if any. The interactive
	// flow replaces it with its loopback callback address.
	RedirectURL string `json:"redirect_url,omitempty"`
}

// IsComplete returns true if the configuration can be used for OAuth.
func (c *ClientConfig) IsComplete() bool {
	return c != nil && c.ClientID != "" && c.TokenURL != ""
}
