package driving

import (
	"context"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// ConnectorService is the read-only facade over Calendar, Gmail and Drive.
// Every operation obtains a valid credential, calls the providers and returns
// normalised records. Errors carry a kind reported by domain.KindOf.
type ConnectorService interface {
	// UpcomingEvents merges upcoming events from all configured calendars,
	// ordered by start (unknown first). maxResults limits each calendar.
	UpcomingEvents(ctx context.Context, maxResults int) ([]domain.NormalizedEvent, error)

	// ListCalendars returns the user's calendar list.
	ListCalendars(ctx context.Context) ([]domain.CalendarInfo, error)

	// UnreadMessages returns unread inbox messages.
	UnreadMessages(ctx context.Context, maxResults int) ([]domain.NormalizedMessage, error)

	// RecentFiles returns non-trashed files, most recently modified first.
	RecentFiles(ctx context.Context, maxResults int) ([]domain.NormalizedFile, error)

	// SearchFiles returns non-trashed files whose name contains name.
	SearchFiles(ctx context.Context, name string, maxResults int) ([]domain.NormalizedFile, error)

	// FileContent exports a Google Doc as plain text.
	FileContent(ctx context.Context, fileID string) (*domain.NormalizedFileContent, error)
}
