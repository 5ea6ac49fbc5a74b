package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
	"github.com/custodia-labs/gconnect/internal/core/ports/driving"
	"github.com/custodia-labs/gconnect/internal/logger"
)

// Ensure CredentialManager implements the interface.
var _ driving.CredentialService = (*CredentialManager)(nil)

// DefaultRefreshBuffer is how long before expiry a credential is refreshed.
const DefaultRefreshBuffer = time.Minute

// CredentialManager owns the lifecycle of the single delegated credential:
// load, cache, refresh, re-acquire and persist.
//
// Every path that may touch the store or the network runs under one mutex,
// so concurrent facade calls never refresh twice or interleave writes.
type CredentialManager struct {
	store         driven.CredentialStore
	clientConfig  driven.ClientConfigSource
	acquirer      driven.CredentialAcquirer
	refresher     driven.TokenRefresher
	defaultScopes []string
	refreshBuffer time.Duration
	now           func() time.Time

	mu     sync.Mutex
	cfg    *domain.ClientConfig
	cached *domain.Credential
	loaded bool
}

// CredentialManagerOption configures a CredentialManager.
type CredentialManagerOption func(*CredentialManager)

// WithRefreshBuffer sets how long before expiry a credential is refreshed.
func WithRefreshBuffer(d time.Duration) CredentialManagerOption {
	return func(m *CredentialManager) {
		if d >= 0 {
			m.refreshBuffer = d
		}
	}
}

// WithDefaultScopes sets the scopes requested at every acquisition in
// addition to the scopes of the triggering call.
func WithDefaultScopes(scopes []string) CredentialManagerOption {
	return func(m *CredentialManager) {
		m.defaultScopes = append([]string(nil), scopes...)
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) CredentialManagerOption {
	return func(m *CredentialManager) {
		m.now = now
	}
}

// NewCredentialManager creates a credential manager.
func NewCredentialManager(
	store driven.CredentialStore,
	clientConfig driven.ClientConfigSource,
	acquirer driven.CredentialAcquirer,
	refresher driven.TokenRefresher,
	opts ...CredentialManagerOption,
) *CredentialManager {
	m := &CredentialManager{
		store:         store,
		clientConfig:  clientConfig,
		acquirer:      acquirer,
		refresher:     refresher,
		defaultScopes: append([]string(nil), domain.DefaultScopes...),
		refreshBuffer: DefaultRefreshBuffer,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EnsureValid returns a credential that covers scopes and is not about to
// expire. A cached credential that is still valid is returned as-is, with
// no store or network access. Callers must not mutate the result.
func (m *CredentialManager) EnsureValid(ctx context.Context, scopes []string) (*domain.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, err := m.loadClientConfig(ctx)
	if err != nil {
		return nil, err
	}

	cred, err := m.current(ctx)
	if err != nil {
		return nil, err
	}

	if cred == nil || !cred.Covers(scopes) {
		logger.Debug("credential missing or lacks scopes, acquiring")
		return m.acquire(ctx, cfg, scopes)
	}

	if !cred.ExpiresWithin(m.now(), m.refreshBuffer) {
		return cred, nil
	}

	return m.renew(ctx, cfg, cred, scopes)
}

// ForceRefresh renews the credential regardless of its expiry. It is used
// after a provider rejected the access token. Without a refresh token it
// falls back to acquisition.
func (m *CredentialManager) ForceRefresh(ctx context.Context, scopes []string) (*domain.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, err := m.loadClientConfig(ctx)
	if err != nil {
		return nil, err
	}

	cred, err := m.current(ctx)
	if err != nil {
		return nil, err
	}
	if cred == nil || !cred.Covers(scopes) {
		return m.acquire(ctx, cfg, scopes)
	}
	return m.renew(ctx, cfg, cred, scopes)
}

// Authorize runs a full acquisition for the configured scopes and stores
// the result.
func (m *CredentialManager) Authorize(ctx context.Context) (*domain.CredentialStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, err := m.loadClientConfig(ctx)
	if err != nil {
		return nil, err
	}
	cred, err := m.acquire(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}
	return m.statusOf(cred), nil
}

// Status describes the stored credential without network calls.
func (m *CredentialManager) Status(ctx context.Context) (*domain.CredentialStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cred, err := m.current(ctx)
	if err != nil {
		return nil, err
	}
	return m.statusOf(cred), nil
}

// Revoke deletes the stored credential and drops the cache.
func (m *CredentialManager) Revoke(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	m.cached = nil
	m.loaded = false
	return nil
}

// Invalidate drops the in-memory credential so the next call reloads it
// from the store. It is safe to call from any goroutine.
func (m *CredentialManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cached = nil
	m.loaded = false
}

// renew refreshes cred, falling back to acquisition. When both fail the
// errors are joined; the refresh failure's kind takes precedence.
func (m *CredentialManager) renew(
	ctx context.Context, cfg *domain.ClientConfig, cred *domain.Credential, scopes []string,
) (*domain.Credential, error) {
	if !cred.HasRefreshToken() {
		logger.Debug("credential expired without refresh token, acquiring")
		return m.acquire(ctx, cfg, scopes)
	}

	refreshed, refreshErr := m.refresh(ctx, cfg, cred)
	if refreshErr == nil {
		return refreshed, nil
	}

	logger.Warn("credential refresh failed, falling back to acquisition: %v", refreshErr)
	acquired, acquireErr := m.acquire(ctx, cfg, scopes)
	if acquireErr != nil {
		return nil, errors.Join(refreshErr, acquireErr)
	}
	return acquired, nil
}

func (m *CredentialManager) refresh(
	ctx context.Context, cfg *domain.ClientConfig, cred *domain.Credential,
) (*domain.Credential, error) {
	logger.Debug("refreshing credential (expiry %s)", cred.Expiry.Format(time.RFC3339))

	refreshed, err := m.refresher.Refresh(ctx, *cfg, *cred)
	if err != nil {
		if !errors.Is(err, domain.ErrRefreshFailed) {
			err = fmt.Errorf("%w: %w", domain.ErrRefreshFailed, err)
		}
		return nil, err
	}
	if refreshed == nil {
		return nil, fmt.Errorf("%w: empty refresh response", domain.ErrRefreshFailed)
	}

	next := refreshed.Clone()
	if next.RefreshToken == "" {
		next.RefreshToken = cred.RefreshToken
	}
	if len(next.Scopes) == 0 {
		next.Scopes = append([]string(nil), cred.Scopes...)
	}
	if next.TokenType == "" {
		next.TokenType = cred.TokenType
	}

	if err := m.persist(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (m *CredentialManager) acquire(
	ctx context.Context, cfg *domain.ClientConfig, scopes []string,
) (*domain.Credential, error) {
	want := domain.UnionScopes(m.defaultScopes, scopes)

	acquired, err := m.acquirer.Acquire(ctx, *cfg, want)
	if err != nil {
		return nil, err
	}
	if acquired == nil {
		return nil, fmt.Errorf("%w: acquisition returned no credential", domain.ErrAuthFlowRequired)
	}

	next := acquired.Clone()
	if len(next.Scopes) == 0 {
		next.Scopes = want
	}

	if err := m.persist(ctx, next); err != nil {
		return nil, err
	}
	logger.Info("acquired new credential")
	return next, nil
}

func (m *CredentialManager) persist(ctx context.Context, cred *domain.Credential) error {
	if err := m.store.Save(ctx, *cred); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	m.cached = cred
	m.loaded = true
	return nil
}

func (m *CredentialManager) current(ctx context.Context) (*domain.Credential, error) {
	if m.loaded {
		return m.cached, nil
	}
	cred, err := m.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}
	m.cached = cred
	m.loaded = true
	return cred, nil
}

func (m *CredentialManager) loadClientConfig(ctx context.Context) (*domain.ClientConfig, error) {
	if m.cfg != nil {
		return m.cfg, nil
	}
	cfg, err := m.clientConfig.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.IsComplete() {
		return nil, fmt.Errorf("%w: client id or token url is empty", domain.ErrMissingClientConfig)
	}
	m.cfg = cfg
	return cfg, nil
}

func (m *CredentialManager) statusOf(cred *domain.Credential) *domain.CredentialStatus {
	if cred == nil {
		return &domain.CredentialStatus{}
	}
	return &domain.CredentialStatus{
		Present:     true,
		Expiry:      cred.Expiry,
		Expired:     cred.IsExpired(m.now()),
		Refreshable: cred.HasRefreshToken(),
		Scopes:      append([]string(nil), cred.Scopes...),
	}
}
