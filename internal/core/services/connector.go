package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
	"github.com/custodia-labs/gconnect/internal/core/ports/driving"
	"github.com/custodia-labs/gconnect/internal/logger"
)

// Ensure ConnectorService implements the interface.
var _ driving.ConnectorService = (*ConnectorService)(nil)

// Drive queries used by the facade.
const (
	driveNotTrashed     = "trashed = false"
	driveRecentOrder    = "modifiedTime desc"
	driveNameQueryShape = "name contains '%s' and trashed = false"
)

// Credentials is the part of CredentialManager the facade depends on.
type Credentials interface {
	EnsureValid(ctx context.Context, scopes []string) (*domain.Credential, error)
	ForceRefresh(ctx context.Context, scopes []string) (*domain.Credential, error)
}

// ConnectorConfig holds the per-operation settings of the facade.
type ConnectorConfig struct {
	// CalendarIDs are merged into one timeline. Defaults to "primary".
	CalendarIDs []string
	// CalendarPolicy decides how calendar fan-out failures are handled.
	CalendarPolicy FanOutPolicy
	// GmailLabels and GmailQuery select unread messages.
	GmailLabels []string
	GmailQuery  string
}

// ConnectorService implements the read-only facade.
type ConnectorService struct {
	creds    Credentials
	calendar driven.CalendarProvider
	mail     driven.MailProvider
	files    driven.FileProvider
	cfg      ConnectorConfig
	now      func() time.Time
}

// NewConnectorService creates the facade service.
func NewConnectorService(
	creds Credentials,
	calendar driven.CalendarProvider,
	mail driven.MailProvider,
	files driven.FileProvider,
	cfg ConnectorConfig,
) *ConnectorService {
	if len(cfg.CalendarIDs) == 0 {
		cfg.CalendarIDs = []string{"primary"}
	}
	if len(cfg.GmailLabels) == 0 {
		cfg.GmailLabels = []string{"INBOX"}
	}
	if cfg.GmailQuery == "" {
		cfg.GmailQuery = "is:unread"
	}
	return &ConnectorService{
		creds:    creds,
		calendar: calendar,
		mail:     mail,
		files:    files,
		cfg:      cfg,
		now:      time.Now,
	}
}

// WithClock overrides the time source used for the upcoming-events lower
// bound. Used by tests.
func (s *ConnectorService) WithClock(now func() time.Time) *ConnectorService {
	s.now = now
	return s
}

// UpcomingEvents merges upcoming events from all configured calendars.
func (s *ConnectorService) UpcomingEvents(ctx context.Context, maxResults int) ([]domain.NormalizedEvent, error) {
	if err := checkMaxResults(maxResults, domain.MaxCalendarResults); err != nil {
		return nil, err
	}
	logger.Section("Upcoming events")

	timeMin := s.now().UTC()
	var perSource [][]domain.RawEvent
	err := s.withCredential(ctx, []string{domain.ScopeCalendarReadonly}, func(cred *domain.Credential) error {
		var err error
		perSource, err = fanOut(ctx, s.cfg.CalendarIDs, s.cfg.CalendarPolicy,
			func(ctx context.Context, calendarID string) ([]domain.RawEvent, error) {
				return s.calendar.ListEvents(ctx, cred, domain.EventQuery{
					CalendarID: calendarID,
					MaxResults: maxResults,
					TimeMin:    timeMin,
				})
			})
		return err
	})
	if err != nil {
		return nil, err
	}

	events := MergeEvents(perSource...)
	logger.Debug("merged %d events from %d calendars", len(events), len(s.cfg.CalendarIDs))
	return events, nil
}

// ListCalendars returns the user's calendar list.
func (s *ConnectorService) ListCalendars(ctx context.Context) ([]domain.CalendarInfo, error) {
	var out []domain.CalendarInfo
	err := s.withCredential(ctx, []string{domain.ScopeCalendarReadonly}, func(cred *domain.Credential) error {
		var err error
		out, err = s.calendar.ListCalendars(ctx, cred)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.CalendarInfo{}
	}
	return out, nil
}

// UnreadMessages returns unread inbox messages.
func (s *ConnectorService) UnreadMessages(ctx context.Context, maxResults int) ([]domain.NormalizedMessage, error) {
	if err := checkMaxResults(maxResults, domain.MaxGmailResults); err != nil {
		return nil, err
	}

	var raw []domain.RawMessage
	err := s.withCredential(ctx, []string{domain.ScopeGmailReadonly}, func(cred *domain.Credential) error {
		var err error
		raw, err = s.mail.ListMessages(ctx, cred, domain.MessageQuery{
			LabelIDs:   s.cfg.GmailLabels,
			Query:      s.cfg.GmailQuery,
			MaxResults: maxResults,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return NormalizeMessages(raw), nil
}

// RecentFiles returns non-trashed files, most recently modified first.
func (s *ConnectorService) RecentFiles(ctx context.Context, maxResults int) ([]domain.NormalizedFile, error) {
	if err := checkMaxResults(maxResults, domain.MaxDriveResults); err != nil {
		return nil, err
	}
	return s.listFiles(ctx, domain.FileQuery{
		Query:      driveNotTrashed,
		OrderBy:    driveRecentOrder,
		MaxResults: maxResults,
	})
}

// SearchFiles returns non-trashed files whose name contains name.
func (s *ConnectorService) SearchFiles(ctx context.Context, name string, maxResults int) ([]domain.NormalizedFile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.InvalidInputf("name is required")
	}
	if err := checkMaxResults(maxResults, domain.MaxDriveResults); err != nil {
		return nil, err
	}
	return s.listFiles(ctx, domain.FileQuery{
		Query:      NameContainsQuery(name),
		MaxResults: maxResults,
	})
}

// FileContent exports a Google Doc as plain text.
func (s *ConnectorService) FileContent(ctx context.Context, fileID string) (*domain.NormalizedFileContent, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, domain.InvalidInputf("file id is required")
	}

	var raw *domain.RawFileContent
	err := s.withCredential(ctx, []string{domain.ScopeDriveReadonly}, func(cred *domain.Credential) error {
		var err error
		raw, err = s.files.ExportText(ctx, cred, fileID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}
	return NormalizeFileContent(fileID, raw), nil
}

func (s *ConnectorService) listFiles(ctx context.Context, q domain.FileQuery) ([]domain.NormalizedFile, error) {
	var raw []domain.RawFile
	err := s.withCredential(ctx, []string{domain.ScopeDriveReadonly}, func(cred *domain.Credential) error {
		var err error
		raw, err = s.files.ListFiles(ctx, cred, q)
		return err
	})
	if err != nil {
		return nil, err
	}
	return NormalizeFiles(raw), nil
}

// withCredential runs call with a valid credential. If the provider rejects
// the token, the credential is force-refreshed and call is repeated once.
func (s *ConnectorService) withCredential(
	ctx context.Context, scopes []string, call func(*domain.Credential) error,
) error {
	cred, err := s.creds.EnsureValid(ctx, scopes)
	if err != nil {
		return err
	}

	err = call(cred)
	if !errors.Is(err, domain.ErrCredentialInvalid) {
		return err
	}

	logger.Warn("provider rejected credential, forcing refresh: %v", err)
	cred, err = s.creds.ForceRefresh(ctx, scopes)
	if err != nil {
		return err
	}
	return call(cred)
}

func checkMaxResults(n, limit int) error {
	if n < 1 || n > limit {
		return domain.InvalidInputf("max_results must be between 1 and %d, got %d", limit, n)
	}
	return nil
}

// NameContainsQuery builds a Drive query matching non-trashed files whose
// name contains name. Backslashes and single quotes are escaped.
func NameContainsQuery(name string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(name)
	return fmt.Sprintf(driveNameQueryShape, escaped)
}
