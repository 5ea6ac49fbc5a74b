package services

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gconnect/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gconnect/internal/core/domain"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, "/base")

	require.NotNil(t, service)
	assert.Equal(t, ":memory:", service.Path())
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), "/base").WithEnv(envMap(nil))

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings("/base")
	assert.Equal(t, defaults, *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"server.port":              int64(9100),
		"auth.flow":                "none",
		"auth.token_store":         "sqlite",
		"auth.token_path":          "tokens/token.json",
		"auth.refresh_buffer":      "2m",
		"auth.open_browser":        false,
		"calendar.ids":             []any{"primary", "family@group.calendar.google.com"},
		"calendar.partial_results": true,
		"upstream.timeout":         int64(10),
	})
	service := NewSettingsService(store, "/base").WithEnv(envMap(nil))

	settings, err := service.Get()
	require.NoError(t, err)

	assert.Equal(t, 9100, settings.Server.Port)
	assert.Equal(t, domain.AuthFlowNone, settings.Auth.Flow)
	assert.Equal(t, domain.TokenStoreSQLite, settings.Auth.TokenStore)
	assert.Equal(t, filepath.Join("/base", "tokens/token.json"), settings.Auth.TokenPath)
	assert.Equal(t, 2*time.Minute, settings.Auth.RefreshBuffer)
	assert.False(t, settings.Auth.OpenBrowser)
	assert.Equal(t, []string{"primary", "family@group.calendar.google.com"}, settings.Calendar.IDs)
	assert.True(t, settings.Calendar.PartialResults)
	assert.Equal(t, 10*time.Second, settings.Upstream.Timeout, "integers are seconds")
}

func TestSettingsService_Get_EnvOverridesFile(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{
		"server.port": int64(9100),
		"gmail.query": "is:unread",
	})
	service := NewSettingsService(store, "/base").WithEnv(envMap(map[string]string{
		"GCONN_SERVER_PORT":        "9200",
		"GCONN_GMAIL_QUERY":        "is:unread is:important",
		"GCONN_CALENDAR_IDS":       "primary, team@group.calendar.google.com ,",
		"GCONN_AUTH_ACCESS_TOKEN":  "ya29.static",
		"GCONN_AUTH_OPEN_BROWSER":  "false",
		"GOOGLE_CLIENT_ID":         "id.apps.googleusercontent.com",
		"GOOGLE_CLIENT_SECRET":     "shh",
		"GCONN_UPSTREAM_TIMEOUT":   "5s",
		"GCONN_AUTH_CALLBACK_PORT": "not-a-number",
	}))

	settings, err := service.Get()
	require.NoError(t, err)

	assert.Equal(t, 9200, settings.Server.Port)
	assert.Equal(t, "is:unread is:important", settings.Gmail.Query)
	assert.Equal(t, []string{"primary", "team@group.calendar.google.com"}, settings.Calendar.IDs)
	assert.Equal(t, "ya29.static", settings.Auth.StaticAccessToken)
	assert.False(t, settings.Auth.OpenBrowser)
	assert.Equal(t, "id.apps.googleusercontent.com", settings.Auth.ClientID)
	assert.Equal(t, "shh", settings.Auth.ClientSecret)
	assert.Equal(t, 5*time.Second, settings.Upstream.Timeout)
	assert.Zero(t, settings.Auth.CallbackPort, "unparsable override falls back")
}

func TestSettingsService_Get_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{"bad duration", map[string]any{"upstream.timeout": "soon"}},
		{"bad flow", map[string]any{"auth.flow": "device"}},
		{"bad store", map[string]any{"auth.token_store": "redis"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStoreWith(tt.values), "/base").WithEnv(envMap(nil))
			_, err := service.Get()
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, "/base").WithEnv(envMap(nil))

	require.NoError(t, service.Set("auth.flow", "static"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AuthFlowStatic, settings.Auth.Flow)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "GCONN_SERVER_PORT", envKey("server.port"))
	assert.Equal(t, "GCONN_CALENDAR_PARTIAL_RESULTS", envKey("calendar.partial_results"))
}
