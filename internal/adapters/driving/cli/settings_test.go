package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Short key", "abc123", "****"},
		{"Exactly 8 chars", "12345678", "****"},
		{"Long key", "ya29.a0AfH6SMBxyz", "ya29...Bxyz"},
		{"Empty key", "", "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskSecret(tt.input))
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected any
	}{
		{"true", "true", true},
		{"false", "false", false},
		{"integer", "9100", int64(9100)},
		{"string", "sqlite", "sqlite"},
		{"duration stays string", "2m", "2m"},
		{"list", "primary, family ,", []any{"primary", "family"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseValue(tt.input))
		})
	}
}

func TestSettingsShow(t *testing.T) {
	settings := newMockSettingsService()
	settings.settings.Auth.ClientID = "id.apps.googleusercontent.com"
	settings.settings.Auth.ClientSecret = "GOCSPX-verysecret"
	withServices(t, &Services{Settings: settings})

	out, err := execute(t, "settings", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "Address: 127.0.0.1:9000")
	assert.Contains(t, out, "Client Secret: GOCS...cret")
	assert.NotContains(t, out, "verysecret")
	assert.Contains(t, out, "IDs: primary")
	assert.Contains(t, out, "Query: is:unread")
}

func TestSettingsSet(t *testing.T) {
	settings := newMockSettingsService()
	withServices(t, &Services{Settings: settings})

	out, err := execute(t, "settings", "set", "server.port", "9100")
	require.NoError(t, err)

	assert.Equal(t, int64(9100), settings.values["server.port"])
	assert.Contains(t, out, "Set server.port")
}

func TestSettingsPath(t *testing.T) {
	withServices(t, &Services{Settings: newMockSettingsService()})

	out, err := execute(t, "settings", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "/home/u/.gconnect/config.toml")
}

func TestSettings_NotConfigured(t *testing.T) {
	withServices(t, &Services{})

	_, err := execute(t, "settings", "show")
	assert.Error(t, err)
}
