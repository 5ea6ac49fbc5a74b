package google

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// DefaultTimeout bounds a single upstream call.
const DefaultTimeout = 30 * time.Second

// ServiceOptions configures how API clients are built.
type ServiceOptions struct {
	// HTTPClient is the base transport. Nil uses http.DefaultClient.
	HTTPClient *http.Client
	// Endpoint overrides the API base URL. Used by tests.
	Endpoint string
	// Timeout bounds each upstream call. Zero uses DefaultTimeout.
	Timeout time.Duration
}

// WithTimeout derives the per-call context.
func (o ServiceOptions) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// clientOptions authenticates o.HTTPClient with cred's access token.
func (o ServiceOptions) clientOptions(ctx context.Context, cred *domain.Credential) []option.ClientOption {
	if o.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.HTTPClient)
	}
	opts := []option.ClientOption{
		option.WithHTTPClient(oauth2.NewClient(ctx, NewTokenSource(cred))),
	}
	if o.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(o.Endpoint))
	}
	return opts
}

// NewGmailService creates a Gmail API service authenticated with cred.
func NewGmailService(ctx context.Context, cred *domain.Credential, o ServiceOptions) (*gmail.Service, error) {
	return gmail.NewService(ctx, o.clientOptions(ctx, cred)...)
}

// NewDriveService creates a Google Drive API service authenticated with cred.
func NewDriveService(ctx context.Context, cred *domain.Credential, o ServiceOptions) (*drive.Service, error) {
	return drive.NewService(ctx, o.clientOptions(ctx, cred)...)
}

// NewCalendarService creates a Google Calendar API service authenticated with cred.
func NewCalendarService(ctx context.Context, cred *domain.Credential, o ServiceOptions) (*calendar.Service, error) {
	return calendar.NewService(ctx, o.clientOptions(ctx, cred)...)
}
