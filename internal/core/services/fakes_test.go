package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

type fakeClientConfig struct {
	cfg   *domain.ClientConfig
	err   error
	calls atomic.Int32
}

func (f *fakeClientConfig) Load(_ context.Context) (*domain.ClientConfig, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.cfg, nil
}

func validClientConfig() *fakeClientConfig {
	return &fakeClientConfig{cfg: &domain.ClientConfig{
		ClientID:     "client-id",
		ClientSecret: "secret",
		AuthURL:      "https://accounts.google.com/o/oauth2/auth",
		TokenURL:     "https://oauth2.googleapis.com/token",
	}}
}

type fakeStore struct {
	mu      sync.Mutex
	cred    *domain.Credential
	loads   int
	saves   int
	saveErr error
}

func (f *fakeStore) Load(_ context.Context) (*domain.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.cred == nil {
		return nil, nil
	}
	return f.cred.Clone(), nil
}

func (f *fakeStore) Save(_ context.Context, cred domain.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.cred = cred.Clone()
	return nil
}

func (f *fakeStore) Delete(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cred = nil
	return nil
}

func (f *fakeStore) stored() *domain.Credential {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cred
}

type fakeAcquirer struct {
	cred       *domain.Credential
	err        error
	calls      atomic.Int32
	lastScopes []string
}

func (f *fakeAcquirer) Acquire(_ context.Context, _ domain.ClientConfig, scopes []string) (*domain.Credential, error) {
	f.calls.Add(1)
	f.lastScopes = scopes
	if f.err != nil {
		return nil, f.err
	}
	return f.cred.Clone(), nil
}

type fakeRefresher struct {
	result *domain.Credential
	err    error
	calls  atomic.Int32
}

func (f *fakeRefresher) Refresh(_ context.Context, _ domain.ClientConfig, _ domain.Credential) (*domain.Credential, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.result.Clone(), nil
}

// fakeCredentials is a Credentials stub for facade tests.
type fakeCredentials struct {
	cred       *domain.Credential
	err        error
	ensured    atomic.Int32
	forced     atomic.Int32
	lastScopes []string
}

func (f *fakeCredentials) EnsureValid(_ context.Context, scopes []string) (*domain.Credential, error) {
	f.ensured.Add(1)
	f.lastScopes = scopes
	if f.err != nil {
		return nil, f.err
	}
	return f.cred, nil
}

func (f *fakeCredentials) ForceRefresh(_ context.Context, _ []string) (*domain.Credential, error) {
	f.forced.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Credential{AccessToken: "forced"}, nil
}

type fakeCalendar struct {
	mu        sync.Mutex
	events    map[string][]domain.RawEvent
	errs      map[string]error
	calendars []domain.CalendarInfo
	queries   []domain.EventQuery
	// rejectToken makes calls with this access token fail as invalid.
	rejectToken string
}

func (f *fakeCalendar) ListEvents(_ context.Context, cred *domain.Credential, q domain.EventQuery) ([]domain.RawEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.rejectToken != "" && cred.AccessToken == f.rejectToken {
		return nil, domain.ErrCredentialInvalid
	}
	if err := f.errs[q.CalendarID]; err != nil {
		return nil, err
	}
	return f.events[q.CalendarID], nil
}

func (f *fakeCalendar) ListCalendars(_ context.Context, _ *domain.Credential) ([]domain.CalendarInfo, error) {
	return f.calendars, nil
}

type fakeMail struct {
	msgs      []domain.RawMessage
	err       error
	lastQuery domain.MessageQuery
}

func (f *fakeMail) ListMessages(_ context.Context, _ *domain.Credential, q domain.MessageQuery) ([]domain.RawMessage, error) {
	f.lastQuery = q
	return f.msgs, f.err
}

type fakeFiles struct {
	files     []domain.RawFile
	content   *domain.RawFileContent
	err       error
	lastQuery domain.FileQuery
	calls     int
}

func (f *fakeFiles) ListFiles(_ context.Context, _ *domain.Credential, q domain.FileQuery) ([]domain.RawFile, error) {
	f.calls++
	f.lastQuery = q
	return f.files, f.err
}

func (f *fakeFiles) ExportText(_ context.Context, _ *domain.Credential, _ string) (*domain.RawFileContent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.content, nil
}

var errBoom = errors.New("boom")
