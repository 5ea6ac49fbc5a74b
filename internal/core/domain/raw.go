package domain

import "strings"

// Raw records are what provider clients return. They mirror the upstream
// payloads loosely: every field is optional and an empty string means the
// provider did not send it. Only the aggregator turns them into normalised
// records.

// EventTime is a calendar event boundary. Timed events carry DateTime,
// all-day events carry Date.
type EventTime struct {
	DateTime string
	Date     string
}

// Value returns DateTime, falling back to Date.
func (t EventTime) Value() string {
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}

// RawEvent is a calendar event as returned by the Calendar API.
type RawEvent struct {
	ID          string
	CalendarID  string
	Summary     string
	Description string
	Location    string
	Start       EventTime
	End         EventTime
}

// RawMessage is a Gmail message fetched in metadata format.
type RawMessage struct {
	ID       string
	ThreadID string
	Snippet  string
	// Headers are the requested metadata headers in payload order.
	Headers []Header
}

// Header is one RFC 5322 header.
type Header struct {
	Name  string
	Value string
}

// HeaderValue returns the value of the named header, matched
// case-insensitively. The last occurrence wins.
func (m RawMessage) HeaderValue(name string) string {
	var v string
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			v = h.Value
		}
	}
	return v
}

// RawFile is Drive file metadata.
type RawFile struct {
	ID           string
	Name         string
	MimeType     string
	ModifiedTime string
}

// RawFileContent is a Drive file with its exported plain-text body.
type RawFileContent struct {
	RawFile
	Content string
}
