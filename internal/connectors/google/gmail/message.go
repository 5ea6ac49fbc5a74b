package gmail

import (
	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// Headers requested for each message.
var metadataHeaders = []string{"From", "Subject"}

// MessageToRaw converts a Gmail message fetched with format=metadata.
func MessageToRaw(msg *gmail.Message) domain.RawMessage {
	raw := domain.RawMessage{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  msg.Snippet,
	}
	if msg.Payload != nil {
		raw.Headers = make([]domain.Header, 0, len(msg.Payload.Headers))
		for _, h := range msg.Payload.Headers {
			if h == nil {
				continue
			}
			raw.Headers = append(raw.Headers, domain.Header{Name: h.Name, Value: h.Value})
		}
	}
	return raw
}
