// internal/models/event.go
package models

type EventType string

const (
	EventQuoteCreated    EventType = "quote_created"
	EventLeadCaptured    EventType = "lead_captured"
	EventQuoteDownloaded EventType = "quote_downloaded"
)

// WebhookEvent is relayed to the spreadsheet log and the event index.
// Timestamp is RFC3339.
type WebhookEvent struct {
	Event     EventType              `json:"event"`
	Timestamp string                 `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}
