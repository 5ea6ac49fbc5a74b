// Package jsonfile persists the credential as a JSON document on disk,
// compatible with the authorized-user token.json written by Google's
// Python client libraries.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
	"github.com/custodia-labs/gconnect/internal/logger"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// legacyExpiryLayout is the naive UTC timestamp some older token files use.
const legacyExpiryLayout = "2006-01-02T15:04:05.999999"

// tokenFile is the on-disk shape. Token is the access token field name
// used by Google's Python libraries; it is read but never written.
type tokenFile struct {
	AccessToken  string   `json:"access_token,omitempty"`
	Token        string   `json:"token,omitempty"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	TokenType    string   `json:"token_type,omitempty"`
	Expiry       string   `json:"expiry,omitempty"`
	Scopes       []string `json:"scopes,omitempty"`
}

// CredentialStore stores the credential in a single JSON file with 0600
// permissions. Writes are atomic (temp file then rename).
type CredentialStore struct {
	mu   sync.Mutex
	path string
}

// NewCredentialStore creates a store backed by path.
func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: filepath.Clean(path)}
}

// Path returns the token file path.
func (s *CredentialStore) Path() string {
	return s.path
}

// Load reads the credential. Returns nil when the file does not exist or
// is empty.
func (s *CredentialStore) Load(_ context.Context) (*domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse token file %s: %w", s.path, err)
	}

	expiry, err := parseExpiry(tf.Expiry)
	if err != nil {
		return nil, fmt.Errorf("parse token file %s: %w", s.path, err)
	}

	access := tf.AccessToken
	if access == "" {
		access = tf.Token
	}

	return &domain.Credential{
		AccessToken:  access,
		RefreshToken: tf.RefreshToken,
		TokenType:    tf.TokenType,
		Expiry:       expiry,
		Scopes:       tf.Scopes,
	}, nil
}

// Save atomically replaces the token file with cred.
func (s *CredentialStore) Save(_ context.Context, cred domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tf := tokenFile{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		TokenType:    cred.TokenType,
		Scopes:       cred.Scopes,
	}
	if !cred.Expiry.IsZero() {
		tf.Expiry = cred.Expiry.UTC().Format(time.RFC3339Nano)
	}

	data, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write token file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

// Delete removes the token file. Deleting a missing file is not an error.
func (s *CredentialStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete token file: %w", err)
	}
	return nil
}

// Watch calls onChange whenever the token file is created, written, renamed
// or removed by anyone, until ctx is cancelled. The parent directory is
// watched so that atomic replacements are seen.
func (s *CredentialStore) Watch(ctx context.Context, onChange func()) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != s.path || event.Op == fsnotify.Chmod {
					continue
				}
				logger.Debug("token file changed: %s", event.Op)
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("token file watcher: %v", err)
			}
		}
	}()

	return nil
}

func parseExpiry(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(legacyExpiryLayout, v, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid expiry %q", v)
	}
	return t, nil
}
