package driven

import (
	"context"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// Provider clients translate one facade step into one or more upstream calls
// and return raw records. Failures are classified as
// domain.ErrCredentialInvalid (401), domain.ErrUpstreamRejected (other 4xx)
// or domain.ErrUpstreamUnavailable (5xx, network, timeout).

// CalendarProvider reads Google Calendar.
type CalendarProvider interface {
	// ListEvents returns one page of single (expanded) events ordered by
	// start time.
	ListEvents(ctx context.Context, cred *domain.Credential, q domain.EventQuery) ([]domain.RawEvent, error)

	// ListCalendars returns one page of the user's calendar list.
	ListCalendars(ctx context.Context, cred *domain.Credential) ([]domain.CalendarInfo, error)
}

// MailProvider reads Gmail.
type MailProvider interface {
	// ListMessages returns matching messages with their From and Subject
	// headers, in the order the mailbox listed them.
	ListMessages(ctx context.Context, cred *domain.Credential, q domain.MessageQuery) ([]domain.RawMessage, error)
}

// FileProvider reads Google Drive.
type FileProvider interface {
	// ListFiles returns one page of file metadata.
	ListFiles(ctx context.Context, cred *domain.Credential, q domain.FileQuery) ([]domain.RawFile, error)

	// ExportText returns the file's metadata and plain-text body.
	// Returns *domain.UnsupportedExportError for files that are not Google Docs.
	ExportText(ctx context.Context, cred *domain.Credential, fileID string) (*domain.RawFileContent, error)
}
