package domain

import "time"

// Google Drive MIME type for native documents. Only these can be exported
// as plain text.
const MimeTypeGoogleDoc = "application/vnd.google-apps.document"

// Provider page caps. A max_results above these is rejected.
const (
	MaxCalendarResults = 2500
	MaxGmailResults    = 500
	MaxDriveResults    = 1000
)

// EventQuery selects upcoming events from one calendar.
type EventQuery struct {
	CalendarID string
	MaxResults int
	// TimeMin is the lower bound on event end time.
	TimeMin time.Time
}

// MessageQuery selects messages from the mailbox.
type MessageQuery struct {
	LabelIDs   []string
	Query      string
	MaxResults int
}

// FileQuery selects Drive files.
type FileQuery struct {
	// Query is a Drive search expression.
	Query      string
	OrderBy    string
	MaxResults int
}
