package eventrelay

import (
	"context"

	"winhouse-quote/internal/common/logger"
)

type Input struct {
	Event     string                 `json:"event"`
	Timestamp string                 `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

type Output struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Event   string `json:"event"`

	SheetsDelivered bool `json:"-"`
	Indexed         bool `json:"-"`
}

// IndexedEvent is the document stored in the event index.
type IndexedEvent struct {
	Event      string                 `json:"event"`
	Timestamp  string                 `json:"timestamp"`
	ReceivedAt string                 `json:"receivedAt"`
	Data       map[string]interface{} `json:"data"`
}

// EventIndexer stores relayed events for later search.
type EventIndexer interface {
	IndexDocument(ctx context.Context, index string, doc interface{}) error
}

type ServiceDependencies struct {
	Logger  logger.Logger
	Indexer EventIndexer
}

// IndexMapping creates the event index. Data stays dynamic since each event
// type carries different keys.
const IndexMapping = `{
	"mappings": {
		"properties": {
			"event": {"type": "keyword"},
			"timestamp": {"type": "date"},
			"receivedAt": {"type": "date"},
			"data": {"type": "object", "dynamic": true}
		}
	}
}`
