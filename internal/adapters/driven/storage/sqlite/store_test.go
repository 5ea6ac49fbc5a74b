package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseFileName), store.Path())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNewStore_MkdirAllError(t *testing.T) {
	store, err := NewStore("/dev/null/cannot/create/dirs")
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.CredentialStore().Save(ctx, domain.Credential{AccessToken: "persisted"}))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err, "migrations are not re-applied")
	defer second.Close()

	cred, err := second.CredentialStore().Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "persisted", cred.AccessToken)

	var applied int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestCredentialStore_LoadEmpty(t *testing.T) {
	store := setupTestStore(t)

	cred, err := store.CredentialStore().Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cred)
}

func TestCredentialStore_SaveAndLoad(t *testing.T) {
	store := setupTestStore(t)
	creds := store.CredentialStore()
	ctx := context.Background()

	expiry := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	require.NoError(t, creds.Save(ctx, domain.Credential{
		AccessToken:  "ya29.a",
		RefreshToken: "1//r",
		TokenType:    "Bearer",
		Expiry:       expiry,
		Scopes:       domain.DefaultScopes,
	}))

	cred, err := creds.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, cred)

	assert.Equal(t, "ya29.a", cred.AccessToken)
	assert.Equal(t, "1//r", cred.RefreshToken)
	assert.Equal(t, "Bearer", cred.TokenType)
	assert.True(t, expiry.Equal(cred.Expiry))
	assert.Equal(t, domain.DefaultScopes, cred.Scopes)
}

func TestCredentialStore_SaveReplaces(t *testing.T) {
	store := setupTestStore(t)
	creds := store.CredentialStore()
	ctx := context.Background()

	require.NoError(t, creds.Save(ctx, domain.Credential{AccessToken: "old", RefreshToken: "r", Scopes: []string{"a"}}))
	require.NoError(t, creds.Save(ctx, domain.Credential{AccessToken: "new"}))

	cred, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", cred.AccessToken)
	assert.Empty(t, cred.RefreshToken)
	assert.Nil(t, cred.Scopes)
	assert.True(t, cred.Expiry.IsZero())

	var rows int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM credentials").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestCredentialStore_Delete(t *testing.T) {
	store := setupTestStore(t)
	creds := store.CredentialStore()
	ctx := context.Background()

	require.NoError(t, creds.Delete(ctx), "deleting nothing is fine")
	require.NoError(t, creds.Save(ctx, domain.Credential{AccessToken: "a"}))
	require.NoError(t, creds.Delete(ctx))

	cred, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, cred)
}

func TestCredentialStore_ClosedDatabase(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	ctx := context.Background()
	_, err = store.CredentialStore().Load(ctx)
	assert.Error(t, err)
	assert.Error(t, store.CredentialStore().Save(ctx, domain.Credential{AccessToken: "a"}))
	assert.Error(t, store.CredentialStore().Delete(ctx))
}
