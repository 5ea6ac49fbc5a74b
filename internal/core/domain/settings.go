package domain

import (
	"fmt"
	"path/filepath"
	"time"
)

const unknownDescription = "Unknown"

// TokenStoreKind selects where the credential is persisted.
type TokenStoreKind string

// Available credential stores.
const (
	// TokenStoreFile keeps the credential in a JSON file (token.json).
	TokenStoreFile TokenStoreKind = "file"

	// TokenStoreSQLite keeps the credential in a SQLite database.
	TokenStoreSQLite TokenStoreKind = "sqlite"

	// TokenStoreMemory keeps the credential in process memory only.
	TokenStoreMemory TokenStoreKind = "memory"
)

// IsValid returns true if the store kind is recognised.
func (k TokenStoreKind) IsValid() bool {
	switch k {
	case TokenStoreFile, TokenStoreSQLite, TokenStoreMemory:
		return true
	default:
		return false
	}
}

// AuthFlow selects how a credential is acquired when none is usable.
type AuthFlow string

// Available acquisition strategies.
const (
	// AuthFlowInteractive runs the loopback browser consent flow.
	AuthFlowInteractive AuthFlow = "interactive"

	// AuthFlowStatic uses pre-provisioned tokens from settings.
	AuthFlowStatic AuthFlow = "static"

	// AuthFlowNone never acquires; a missing credential is an error.
	AuthFlowNone AuthFlow = "none"
)

// IsValid returns true if the flow is recognised.
func (f AuthFlow) IsValid() bool {
	switch f {
	case AuthFlowInteractive, AuthFlowStatic, AuthFlowNone:
		return true
	default:
		return false
	}
}

// Description returns a human-readable description of the flow.
func (f AuthFlow) Description() string {
	switch f {
	case AuthFlowInteractive:
		return "Interactive (browser consent)"
	case AuthFlowStatic:
		return "Static (pre-provisioned tokens)"
	case AuthFlowNone:
		return "None (credential must already exist)"
	default:
		return unknownDescription
	}
}

// AppSettings holds the complete application configuration.
type AppSettings struct {
	Server   ServerSettings
	Auth     AuthSettings
	Calendar CalendarSettings
	Gmail    GmailSettings
	Upstream UpstreamSettings
}

// ServerSettings configures the HTTP facade.
type ServerSettings struct {
	Host string
	Port int
}

// Addr returns host:port.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AuthSettings configures the credential lifecycle.
type AuthSettings struct {
	// ClientConfigPath is the Google client secrets JSON file.
	ClientConfigPath string
	// ClientID and ClientSecret replace the file when both are set.
	ClientID     string
	ClientSecret string

	TokenStore TokenStoreKind
	// TokenPath is the credential file for TokenStoreFile.
	TokenPath string
	// DataDir holds the SQLite database for TokenStoreSQLite.
	DataDir string

	Flow   AuthFlow
	Scopes []string

	CallbackPort   int
	ConsentTimeout time.Duration
	RefreshBuffer  time.Duration
	OpenBrowser    bool

	// StaticAccessToken and StaticRefreshToken feed AuthFlowStatic.
	StaticAccessToken  string
	StaticRefreshToken string
}

// CalendarSettings configures the upcoming-events aggregation.
type CalendarSettings struct {
	// IDs are the calendars merged into one timeline.
	IDs []string
	// PartialResults skips failed calendars instead of failing the call.
	PartialResults bool
}

// GmailSettings configures the unread-messages query.
type GmailSettings struct {
	Labels []string
	Query  string
}

// UpstreamSettings configures calls to Google APIs.
type UpstreamSettings struct {
	Timeout time.Duration
	// RequestsPerSecond caps calls per service. Zero uses the built-in limits.
	RequestsPerSecond float64
}

// DefaultAppSettings returns settings rooted at dir.
func DefaultAppSettings(dir string) AppSettings {
	return AppSettings{
		Server: ServerSettings{
			Host: "127.0.0.1",
			Port: 9000,
		},
		Auth: AuthSettings{
			ClientConfigPath: filepath.Join(dir, "credentials.json"),
			TokenStore:       TokenStoreFile,
			TokenPath:        filepath.Join(dir, "token.json"),
			DataDir:          dir,
			Flow:             AuthFlowInteractive,
			Scopes:           append([]string(nil), DefaultScopes...),
			ConsentTimeout:   5 * time.Minute,
			RefreshBuffer:    time.Minute,
			OpenBrowser:      true,
		},
		Calendar: CalendarSettings{
			IDs: []string{"primary"},
		},
		Gmail: GmailSettings{
			Labels: []string{"INBOX"},
			Query:  "is:unread",
		},
		Upstream: UpstreamSettings{
			Timeout: 30 * time.Second,
		},
	}
}

// Validate checks that the settings can be used to start the service.
func (s *AppSettings) Validate() error {
	if s.Server.Port < 0 || s.Server.Port > 65535 {
		return InvalidInputf("server.port %d out of range", s.Server.Port)
	}
	if !s.Auth.TokenStore.IsValid() {
		return InvalidInputf("unknown auth.token_store %q", s.Auth.TokenStore)
	}
	if !s.Auth.Flow.IsValid() {
		return InvalidInputf("unknown auth.flow %q", s.Auth.Flow)
	}
	if len(s.Auth.Scopes) == 0 {
		return InvalidInputf("auth.scopes must not be empty")
	}
	if len(s.Calendar.IDs) == 0 {
		return InvalidInputf("calendar.ids must not be empty")
	}
	if s.Upstream.Timeout <= 0 {
		return InvalidInputf("upstream.timeout must be positive")
	}
	return nil
}
