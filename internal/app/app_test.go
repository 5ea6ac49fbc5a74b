package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

const clientSecrets = `{"installed":{"client_id":"id.apps.googleusercontent.com","client_secret":"shh",` +
	`"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token"}}`

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()

	a, err := New(Options{ConfigDir: dir, LookupEnv: envMap(nil)})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, domain.TokenStoreFile, a.AppSettings.Auth.TokenStore)
	assert.Equal(t, filepath.Join(dir, "token.json"), a.AppSettings.Auth.TokenPath)
	assert.NotNil(t, a.Connector)
	assert.NotNil(t, a.Credentials)
	assert.NotNil(t, a.Login)
	assert.NotNil(t, a.tokenFile)
}

func TestNew_InvalidSettings(t *testing.T) {
	_, err := New(Options{
		ConfigDir: t.TempDir(),
		LookupEnv: envMap(map[string]string{"GCONN_AUTH_TOKEN_STORE": "redis"}),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

func TestNew_SQLiteStore(t *testing.T) {
	dir := t.TempDir()

	a, err := New(Options{
		ConfigDir: dir,
		LookupEnv: envMap(map[string]string{"GCONN_AUTH_TOKEN_STORE": "sqlite"}),
	})
	require.NoError(t, err)

	assert.Nil(t, a.tokenFile)
	assert.FileExists(t, filepath.Join(dir, "gconnect.db"))
	require.NoError(t, a.Watch(context.Background()), "watch is a no-op without a token file")
	require.NoError(t, a.Close())
}

func TestNew_NoneFlowWithoutCredential(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "credentials.json"), clientSecrets)

	a, err := New(Options{
		ConfigDir: dir,
		LookupEnv: envMap(map[string]string{"GCONN_AUTH_FLOW": "none"}),
	})
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Connector.RecentFiles(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, domain.KindAuthFlowRequired, domain.KindOf(err))
}

func TestNew_EndToEndWithStoredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ya29.stored", r.Header.Get("Authorization"))
		assert.Equal(t, "/files", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]string{{"id": "f1", "name": "Plan"}},
		})
	}))
	defer srv.Close()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "credentials.json"), clientSecrets)
	expiry := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	writeFile(t, filepath.Join(dir, "token.json"), `{"access_token":"ya29.stored","refresh_token":"r",`+
		`"expiry":"`+expiry+`","scopes":["https://www.googleapis.com/auth/drive.readonly"]}`)

	a, err := New(Options{
		ConfigDir:  dir,
		LookupEnv:  envMap(map[string]string{"GCONN_AUTH_FLOW": "none"}),
		HTTPClient: srv.Client(),
		Endpoint:   srv.URL + "/",
	})
	require.NoError(t, err)
	defer a.Close()

	files, err := a.Connector.RecentFiles(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "Plan", *files[0].Name)
}

func TestApp_WatchInvalidatesCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "credentials.json"), clientSecrets)
	tokenPath := filepath.Join(dir, "token.json")
	writeFile(t, tokenPath, `{"access_token":"first","refresh_token":"r"}`)

	a, err := New(Options{
		ConfigDir: dir,
		LookupEnv: envMap(map[string]string{"GCONN_AUTH_FLOW": "none"}),
	})
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, a.Watch(ctx))

	status, err := a.Credentials.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Present)

	require.NoError(t, os.Remove(tokenPath))

	assert.Eventually(t, func() bool {
		status, err := a.Credentials.Status(ctx)
		return err == nil && !status.Present
	}, 2*time.Second, 20*time.Millisecond)
}
