// Package calendar reads upcoming events from the Google Calendar API.
package calendar

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/gconnect/internal/connectors/google"
	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
	"github.com/custodia-labs/gconnect/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.CalendarProvider = (*Provider)(nil)

// Provider lists events and calendars.
type Provider struct {
	opts        google.ServiceOptions
	rateLimiter *google.RateLimiter
}

// New creates a calendar provider.
func New(opts google.ServiceOptions, rateLimiter *google.RateLimiter) *Provider {
	return &Provider{opts: opts, rateLimiter: rateLimiter}
}

// ListEvents returns up to q.MaxResults events of one calendar starting at
// or after q.TimeMin, with recurring events expanded and ordered by start.
func (p *Provider) ListEvents(
	ctx context.Context, cred *domain.Credential, q domain.EventQuery,
) ([]domain.RawEvent, error) {
	ctx, cancel := p.opts.WithTimeout(ctx)
	defer cancel()

	svc, err := google.NewCalendarService(ctx, cred, p.opts)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	events, err := google.Do(ctx, p.rateLimiter, func() (*calendar.Events, error) {
		return svc.Events.List(q.CalendarID).
			TimeMin(q.TimeMin.UTC().Format(time.RFC3339)).
			MaxResults(int64(q.MaxResults)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx).
			Do()
	})
	if err != nil {
		return nil, fmt.Errorf("list events of %s: %w", q.CalendarID, err)
	}

	raw := make([]domain.RawEvent, 0, len(events.Items))
	for _, event := range events.Items {
		if event == nil {
			continue
		}
		raw = append(raw, EventToRaw(event, q.CalendarID))
	}
	logger.Debug("calendar %s: %d events", q.CalendarID, len(raw))
	return raw, nil
}

// ListCalendars returns the first page of the user's calendar list.
func (p *Provider) ListCalendars(ctx context.Context, cred *domain.Credential) ([]domain.CalendarInfo, error) {
	ctx, cancel := p.opts.WithTimeout(ctx)
	defer cancel()

	svc, err := google.NewCalendarService(ctx, cred, p.opts)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	list, err := google.Do(ctx, p.rateLimiter, func() (*calendar.CalendarList, error) {
		return svc.CalendarList.List().Context(ctx).Do()
	})
	if err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}

	infos := make([]domain.CalendarInfo, 0, len(list.Items))
	for _, entry := range list.Items {
		if entry == nil {
			continue
		}
		infos = append(infos, CalendarToInfo(entry))
	}
	return infos, nil
}
