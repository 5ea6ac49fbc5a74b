package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

type mockConnectorService struct {
	calendars []domain.CalendarInfo
	err       error
}

func (m *mockConnectorService) UpcomingEvents(_ context.Context, _ int) ([]domain.NormalizedEvent, error) {
	return nil, m.err
}

func (m *mockConnectorService) ListCalendars(_ context.Context) ([]domain.CalendarInfo, error) {
	return m.calendars, m.err
}

func (m *mockConnectorService) UnreadMessages(_ context.Context, _ int) ([]domain.NormalizedMessage, error) {
	return nil, m.err
}

func (m *mockConnectorService) RecentFiles(_ context.Context, _ int) ([]domain.NormalizedFile, error) {
	return nil, m.err
}

func (m *mockConnectorService) SearchFiles(_ context.Context, _ string, _ int) ([]domain.NormalizedFile, error) {
	return nil, m.err
}

func (m *mockConnectorService) FileContent(_ context.Context, _ string) (*domain.NormalizedFileContent, error) {
	return nil, m.err
}

type mockCredentialService struct {
	status     *domain.CredentialStatus
	err        error
	authorized bool
	revoked    bool
}

func (m *mockCredentialService) Authorize(_ context.Context) (*domain.CredentialStatus, error) {
	m.authorized = true
	return m.status, m.err
}

func (m *mockCredentialService) Status(_ context.Context) (*domain.CredentialStatus, error) {
	return m.status, m.err
}

func (m *mockCredentialService) Revoke(_ context.Context) error {
	m.revoked = true
	return m.err
}

type mockSettingsService struct {
	settings domain.AppSettings
	values   map[string]any
	err      error
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{
		settings: domain.DefaultAppSettings("/home/u/.gconnect"),
		values:   map[string]any{},
	}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings("/home/u/.gconnect")
}

func (m *mockSettingsService) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mockSettingsService) Path() string {
	return "/home/u/.gconnect/config.toml"
}

// withServices injects s for the duration of the test.
func withServices(t *testing.T, s *Services) {
	t.Helper()
	SetServices(s)
	t.Cleanup(func() {
		SetServices(&Services{})
		builder = nil
	})
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
