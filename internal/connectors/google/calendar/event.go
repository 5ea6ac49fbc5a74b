package calendar

import (
	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// EventToRaw converts a Google Calendar event to a RawEvent.
func EventToRaw(event *calendar.Event, calendarID string) domain.RawEvent {
	return domain.RawEvent{
		ID:          event.Id,
		CalendarID:  calendarID,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Start:       eventTime(event.Start),
		End:         eventTime(event.End),
	}
}

// eventTime copies both representations; normalization picks dateTime
// over date.
func eventTime(t *calendar.EventDateTime) domain.EventTime {
	if t == nil {
		return domain.EventTime{}
	}
	return domain.EventTime{DateTime: t.DateTime, Date: t.Date}
}

// CalendarToInfo converts a calendar list entry.
func CalendarToInfo(entry *calendar.CalendarListEntry) domain.CalendarInfo {
	summary := entry.Summary
	if entry.SummaryOverride != "" {
		summary = entry.SummaryOverride
	}
	return domain.CalendarInfo{
		ID:         entry.Id,
		Summary:    summary,
		Primary:    entry.Primary,
		AccessRole: entry.AccessRole,
	}
}
