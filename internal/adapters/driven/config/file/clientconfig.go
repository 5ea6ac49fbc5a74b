package file

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"

	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
)

// Ensure ClientConfigSource implements the interface.
var _ driven.ClientConfigSource = (*ClientConfigSource)(nil)

// ClientConfigSource reads the OAuth client registration downloaded from the
// Google Cloud console ("installed" or "web" credentials.json). An explicit
// client id takes precedence over the file.
type ClientConfigSource struct {
	path         string
	clientID     string
	clientSecret string
}

// NewClientConfigSource creates a source reading path. When clientID is not
// empty the file is ignored and Google's public endpoints are used.
func NewClientConfigSource(path, clientID, clientSecret string) *ClientConfigSource {
	return &ClientConfigSource{
		path:         path,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// Load returns the client registration, or domain.ErrMissingClientConfig when
// there is none or it cannot be parsed.
func (s *ClientConfigSource) Load(_ context.Context) (*domain.ClientConfig, error) {
	if s.clientID != "" {
		return &domain.ClientConfig{
			ClientID:     s.clientID,
			ClientSecret: s.clientSecret,
			AuthURL:      google.Endpoint.AuthURL,
			TokenURL:     google.Endpoint.TokenURL,
		}, nil
	}

	if s.path == "" {
		return nil, fmt.Errorf("%w: no client config path set", domain.ErrMissingClientConfig)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", domain.ErrMissingClientConfig, s.path)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrMissingClientConfig, err)
	}

	conf, err := google.ConfigFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrMissingClientConfig, s.path, err)
	}

	return &domain.ClientConfig{
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		AuthURL:      conf.Endpoint.AuthURL,
		TokenURL:     conf.Endpoint.TokenURL,
		RedirectURL:  conf.RedirectURL,
	}, nil
}
