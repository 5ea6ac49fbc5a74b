package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

func TestExtractFileID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid file URI", "gconnect://drive/files/doc-456", "doc-456"},
		{"invalid prefix", "file://drive/files/doc-456", ""},
		{"nested path", "gconnect://drive/files/a/b", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractFileID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleCalendarsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns calendars as JSON", func(t *testing.T) {
		server := newTestServer(t, &mockConnectorService{calendars: []domain.CalendarInfo{
			{ID: "primary", Summary: "Me", Primary: true},
		}})

		result, err := server.handleCalendarsResource(ctx, makeReadResourceRequest("gconnect://calendars"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var cals []domain.CalendarInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &cals))
		assert.Equal(t, "primary", cals[0].ID)
	})

	t.Run("empty list renders as array", func(t *testing.T) {
		server := newTestServer(t, &mockConnectorService{})

		result, err := server.handleCalendarsResource(ctx, makeReadResourceRequest("gconnect://calendars"))
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, result.Contents[0].Text)
	})

	t.Run("error carries kind", func(t *testing.T) {
		server := newTestServer(t, &mockConnectorService{err: domain.ErrAuthFlowRequired})

		_, err := server.handleCalendarsResource(ctx, makeReadResourceRequest("gconnect://calendars"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "auth_flow_required")
	})
}

func TestServer_handleFileResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns document text", func(t *testing.T) {
		connector := &mockConnectorService{content: &domain.NormalizedFileContent{ID: "doc1", Content: "hello"}}
		server := newTestServer(t, connector)

		result, err := server.handleFileResource(ctx, makeReadResourceRequest("gconnect://drive/files/doc1"))
		require.NoError(t, err)
		assert.Equal(t, "doc1", connector.lastFileID)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "hello", result.Contents[0].Text)
	})

	t.Run("invalid URI is not found", func(t *testing.T) {
		server := newTestServer(t, &mockConnectorService{})

		_, err := server.handleFileResource(ctx, makeReadResourceRequest("gconnect://drive/files/"))
		require.Error(t, err)
	})

	t.Run("export failure", func(t *testing.T) {
		server := newTestServer(t, &mockConnectorService{err: errors.New("boom")})

		_, err := server.handleFileResource(ctx, makeReadResourceRequest("gconnect://drive/files/x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "internal: boom")
	})
}

func TestServer_handleAuthStatusResource(t *testing.T) {
	server, err := NewServer(&Ports{
		Connector: &mockConnectorService{},
		Credentials: &mockCredentialService{status: &domain.CredentialStatus{
			Present:     true,
			Refreshable: true,
			Scopes:      []string{domain.ScopeDriveReadonly},
		}},
	})
	require.NoError(t, err)

	result, err := server.handleAuthStatusResource(context.Background(), makeReadResourceRequest("gconnect://auth/status"))
	require.NoError(t, err)

	var status domain.CredentialStatus
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &status))
	assert.True(t, status.Present)
	assert.True(t, status.Refreshable)
	assert.Equal(t, []string{domain.ScopeDriveReadonly}, status.Scopes)
}
