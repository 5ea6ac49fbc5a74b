package domain

// Normalised records are the stable response shapes of the facade.
// Optional fields are pointers so that absent values serialise as null.

// NormalizedEvent is one upcoming calendar event.
type NormalizedEvent struct {
	// Start is the provider's start value (dateTime, or date for all-day
	// events), used verbatim as the ordering key. Null sorts first.
	Start       *string `json:"start"`
	End         *string `json:"end"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
}

// StartKey returns the ordering key, empty when the start is unknown.
func (e NormalizedEvent) StartKey() string {
	if e.Start == nil {
		return ""
	}
	return *e.Start
}

// NormalizedMessage is one unread mail message.
type NormalizedMessage struct {
	ID       string  `json:"id"`
	ThreadID *string `json:"threadId"`
	Sender   *string `json:"sender"`
	Subject  *string `json:"subject"`
	Snippet  *string `json:"snippet"`
}

// NormalizedFile is Drive file metadata.
type NormalizedFile struct {
	ID           string  `json:"id"`
	Name         *string `json:"name"`
	MimeType     *string `json:"mimeType"`
	ModifiedTime *string `json:"modifiedTime"`
}

// NormalizedFileContent is a Drive document with its plain-text content.
type NormalizedFileContent struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	MimeType *string `json:"mimeType"`
	Content  string  `json:"content"`
}

// CalendarInfo is one entry of the user's calendar list.
type CalendarInfo struct {
	ID         string `json:"id"`
	Summary    string `json:"summary"`
	Primary    bool   `json:"primary"`
	AccessRole string `json:"accessRole,omitempty"`
}

// Optional returns nil for the empty string and a pointer to s otherwise.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
