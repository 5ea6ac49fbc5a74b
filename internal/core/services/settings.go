package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
	"github.com/custodia-labs/gconnect/internal/core/ports/driving"
	"github.com/custodia-labs/gconnect/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyServerHost         = "server.host"
	keyServerPort         = "server.port"
	keyClientConfig       = "auth.client_config"
	keyClientID           = "auth.client_id"
	keyClientSecret       = "auth.client_secret"
	keyTokenStore         = "auth.token_store"
	keyTokenPath          = "auth.token_path"
	keyDataDir            = "auth.data_dir"
	keyAuthFlow           = "auth.flow"
	keyScopes             = "auth.scopes"
	keyCallbackPort       = "auth.callback_port"
	keyConsentTimeout     = "auth.consent_timeout"
	keyRefreshBuffer      = "auth.refresh_buffer"
	keyOpenBrowser        = "auth.open_browser"
	keyStaticAccessToken  = "auth.access_token"
	keyStaticRefreshToken = "auth.refresh_token"
	keyCalendarIDs        = "calendar.ids"
	keyPartialResults     = "calendar.partial_results"
	keyGmailLabels        = "gmail.labels"
	keyGmailQuery         = "gmail.query"
	keyUpstreamTimeout    = "upstream.timeout"
	keyUpstreamRPS        = "upstream.requests_per_second"
)

// EnvPrefix prefixes environment overrides: server.port is read from
// GCONN_SERVER_PORT.
const EnvPrefix = "GCONN_"

// Google's conventional variables for the OAuth client, honoured when the
// prefixed ones are unset.
const (
	envGoogleClientID     = "GOOGLE_CLIENT_ID"
	envGoogleClientSecret = "GOOGLE_CLIENT_SECRET"
)

// SettingsService resolves application settings. Precedence is
// environment, then config file, then defaults.
type SettingsService struct {
	configStore driven.ConfigStore
	baseDir     string
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service. Relative paths and the
// defaults for credentials.json and token.json resolve against baseDir.
func NewSettingsService(configStore driven.ConfigStore, baseDir string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		baseDir:     baseDir,
		lookupEnv:   os.LookupEnv,
	}
}

// WithEnv replaces the environment lookup. Used by tests.
func (s *SettingsService) WithEnv(lookup func(string) (string, bool)) *SettingsService {
	s.lookupEnv = lookup
	return s
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := s.GetDefaults()

	settings := &domain.AppSettings{
		Server: domain.ServerSettings{
			Host: s.getString(keyServerHost, defaults.Server.Host),
			Port: s.getInt(keyServerPort, defaults.Server.Port),
		},
		Auth: domain.AuthSettings{
			ClientConfigPath:   s.getPath(keyClientConfig, defaults.Auth.ClientConfigPath),
			ClientID:           s.getStringFallback(keyClientID, envGoogleClientID),
			ClientSecret:       s.getStringFallback(keyClientSecret, envGoogleClientSecret),
			TokenStore:         domain.TokenStoreKind(s.getString(keyTokenStore, string(defaults.Auth.TokenStore))),
			TokenPath:          s.getPath(keyTokenPath, defaults.Auth.TokenPath),
			DataDir:            s.getPath(keyDataDir, defaults.Auth.DataDir),
			Flow:               domain.AuthFlow(s.getString(keyAuthFlow, string(defaults.Auth.Flow))),
			Scopes:             s.getStringSlice(keyScopes, defaults.Auth.Scopes),
			CallbackPort:       s.getInt(keyCallbackPort, defaults.Auth.CallbackPort),
			OpenBrowser:        s.getBool(keyOpenBrowser, defaults.Auth.OpenBrowser),
			StaticAccessToken:  s.getString(keyStaticAccessToken, ""),
			StaticRefreshToken: s.getString(keyStaticRefreshToken, ""),
		},
		Calendar: domain.CalendarSettings{
			IDs:            s.getStringSlice(keyCalendarIDs, defaults.Calendar.IDs),
			PartialResults: s.getBool(keyPartialResults, defaults.Calendar.PartialResults),
		},
		Gmail: domain.GmailSettings{
			Labels: s.getStringSlice(keyGmailLabels, defaults.Gmail.Labels),
			Query:  s.getString(keyGmailQuery, defaults.Gmail.Query),
		},
	}

	var err error
	if settings.Auth.ConsentTimeout, err = s.getDuration(keyConsentTimeout, defaults.Auth.ConsentTimeout); err != nil {
		return nil, err
	}
	if settings.Auth.RefreshBuffer, err = s.getDuration(keyRefreshBuffer, defaults.Auth.RefreshBuffer); err != nil {
		return nil, err
	}
	if settings.Upstream.Timeout, err = s.getDuration(keyUpstreamTimeout, defaults.Upstream.Timeout); err != nil {
		return nil, err
	}
	if settings.Upstream.RequestsPerSecond, err = s.getFloat(keyUpstreamRPS, 0); err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings(s.baseDir)
}

// Set stores a configuration value in the config file.
func (s *SettingsService) Set(key string, value any) error {
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Helper methods for reading config with env overrides and defaults.

func envKey(key string) string {
	return EnvPrefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

func (s *SettingsService) env(key string) (string, bool) {
	v, ok := s.lookupEnv(envKey(key))
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if v, ok := s.env(key); ok {
		return v
	}
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStringFallback(key, envName string) string {
	if v := s.getString(key, ""); v != "" {
		return v
	}
	if v, ok := s.lookupEnv(envName); ok {
		return v
	}
	return ""
}

func (s *SettingsService) getPath(key, defaultVal string) string {
	p := s.getString(key, defaultVal)
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	if !filepath.IsAbs(p) && s.baseDir != "" {
		p = filepath.Join(s.baseDir, p)
	}
	return p
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if v, ok := s.env(key); ok {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		logger.Warn("ignoring %s=%q: not an integer", envKey(key), v)
	}
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if v, ok := s.env(key); ok {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
		logger.Warn("ignoring %s=%q: not a boolean", envKey(key), v)
	}
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if v, ok := s.env(key); ok {
		return splitList(v)
	}
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return append([]string(nil), defaultVal...)
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	raw := s.getString(key, "")
	if raw == "" {
		// Integers in the file are seconds.
		if n := s.configStore.GetInt(key); n > 0 {
			return time.Duration(n) * time.Second, nil
		}
		return defaultVal, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, domain.InvalidInputf("%s: %v", key, err)
	}
	return d, nil
}

func (s *SettingsService) getFloat(key string, defaultVal float64) (float64, error) {
	raw := s.getString(key, "")
	if raw == "" {
		val, exists := s.configStore.Get(key)
		if !exists {
			return defaultVal, nil
		}
		switch v := val.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		case int:
			return float64(v), nil
		}
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.InvalidInputf("%s: %v", key, err)
	}
	return f, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
