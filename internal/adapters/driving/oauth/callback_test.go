//nolint:noctx // Test file uses http.Get for convenience; context not required in tests
package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, state string) *CallbackServer {
	t.Helper()
	server := NewCallbackServer(0, state)
	require.NoError(t, server.Start())
	t.Cleanup(func() { _ = server.Stop() })
	return server
}

func callback(t *testing.T, server *CallbackServer, params url.Values) *http.Response {
	t.Helper()
	resp, err := http.Get(server.RedirectURI() + "?" + params.Encode())
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestNewCallbackServer(t *testing.T) {
	server := NewCallbackServer(8085, "state-123")

	require.NotNil(t, server)
	assert.Equal(t, 8085, server.Port())
	assert.Equal(t, "state-123", server.expectedState)
	assert.Nil(t, server.server)
}

func TestCallbackServer_StartPicksPort(t *testing.T) {
	server := startServer(t, "s")

	assert.NotZero(t, server.Port())
	assert.Contains(t, server.RedirectURI(), "http://127.0.0.1:")
	assert.Contains(t, server.RedirectURI(), "/callback")
}

func TestCallbackServer_Start_PortInUse(t *testing.T) {
	first := startServer(t, "a")

	second := NewCallbackServer(first.Port(), "b")
	err := second.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestCallbackServer_Success(t *testing.T) {
	server := startServer(t, "good-state")

	resp := callback(t, server, url.Values{"state": {"good-state"}, "code": {"4/abc"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	code, err := server.WaitForCode(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "4/abc", code)
}

func TestCallbackServer_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		params  url.Values
		wantErr string
	}{
		{"state mismatch", url.Values{"state": {"evil"}, "code": {"c"}}, "state mismatch"},
		{"missing state", url.Values{"code": {"c"}}, "state mismatch"},
		{"missing code", url.Values{"state": {"s"}}, "no authorization code"},
		{"provider error", url.Values{"error": {"access_denied"}, "error_description": {"user said no"}}, "access_denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := startServer(t, "s")
			callback(t, server, tt.params)

			_, err := server.WaitForCode(context.Background(), time.Second)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCallbackServer_WaitForCode_Timeout(t *testing.T) {
	server := NewCallbackServer(0, "s")

	_, err := server.WaitForCode(context.Background(), 10*time.Millisecond)
	assert.True(t, errors.Is(err, ErrConsentTimeout))
}

func TestCallbackServer_WaitForCode_Cancelled(t *testing.T) {
	server := NewCallbackServer(0, "s")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := server.WaitForCode(ctx, time.Minute)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCallbackServer_OtherPathsNotFound(t *testing.T) {
	server := startServer(t, "s")

	resp, err := http.Get("http://127.0.0.1:" + strconv.Itoa(server.Port()) + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCallbackServer_StopTwice(t *testing.T) {
	server := NewCallbackServer(0, "s")
	require.NoError(t, server.Start())
	require.NoError(t, server.Stop())
	require.NoError(t, server.Stop())
}

func TestResultHTML_Escapes(t *testing.T) {
	out := resultHTML("<b>", "a & b")
	assert.Contains(t, out, "&lt;b&gt;")
	assert.Contains(t, out, "a &amp; b")
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	require.NoError(t, err)
	b, err := GenerateState()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
}
