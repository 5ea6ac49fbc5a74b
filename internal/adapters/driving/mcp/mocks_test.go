package mcp

import (
	"context"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// mockConnectorService is a mock implementation of driving.ConnectorService.
type mockConnectorService struct {
	events    []domain.NormalizedEvent
	calendars []domain.CalendarInfo
	messages  []domain.NormalizedMessage
	files     []domain.NormalizedFile
	content   *domain.NormalizedFileContent
	err       error

	lastMax    int
	lastName   string
	lastFileID string
}

func (m *mockConnectorService) UpcomingEvents(_ context.Context, maxResults int) ([]domain.NormalizedEvent, error) {
	m.lastMax = maxResults
	return m.events, m.err
}

func (m *mockConnectorService) ListCalendars(_ context.Context) ([]domain.CalendarInfo, error) {
	return m.calendars, m.err
}

func (m *mockConnectorService) UnreadMessages(_ context.Context, maxResults int) ([]domain.NormalizedMessage, error) {
	m.lastMax = maxResults
	return m.messages, m.err
}

func (m *mockConnectorService) RecentFiles(_ context.Context, maxResults int) ([]domain.NormalizedFile, error) {
	m.lastMax = maxResults
	return m.files, m.err
}

func (m *mockConnectorService) SearchFiles(_ context.Context, name string, maxResults int) ([]domain.NormalizedFile, error) {
	m.lastName = name
	m.lastMax = maxResults
	return m.files, m.err
}

func (m *mockConnectorService) FileContent(_ context.Context, fileID string) (*domain.NormalizedFileContent, error) {
	m.lastFileID = fileID
	return m.content, m.err
}

// mockCredentialService is a mock implementation of driving.CredentialService.
type mockCredentialService struct {
	status *domain.CredentialStatus
	err    error
}

func (m *mockCredentialService) Authorize(_ context.Context) (*domain.CredentialStatus, error) {
	return m.status, m.err
}

func (m *mockCredentialService) Status(_ context.Context) (*domain.CredentialStatus, error) {
	return m.status, m.err
}

func (m *mockCredentialService) Revoke(_ context.Context) error {
	return m.err
}
