package eventrelay

import (
	"context"
	"time"

	commonhttp "winhouse-quote/internal/common/http"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/common/metrics"
	"winhouse-quote/internal/format"
)

type Service struct {
	config  *Config
	logger  logger.Logger
	client  *commonhttp.Client
	indexer EventIndexer
	now     func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config:  config,
		logger:  deps.Logger,
		client:  commonhttp.NewClient(config.Timeout),
		indexer: deps.Indexer,
		now:     time.Now,
	}
}

// Execute forwards the event to the spreadsheet webhook and the event index.
// Sink failures are logged and never reported to the caller.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	output := &Output{
		Success: true,
		Message: "Webhook received successfully",
		Event:   input.Event,
	}

	payload := SheetsPayload(input)
	if s.config.SheetsWebhookURL != "" {
		start := time.Now()
		_, err := s.client.PostJSON(ctx, s.config.SheetsWebhookURL, payload, nil)
		metrics.ObserveCollaborator("sheets", start, err)
		if err != nil {
			s.logger.Error("sheets webhook failed", map[string]interface{}{
				"event": input.Event,
				"error": err.Error(),
			})
		} else {
			output.SheetsDelivered = true
		}
	} else {
		s.logger.Info("no sheets webhook configured", map[string]interface{}{
			"event":   input.Event,
			"payload": payload,
		})
	}

	if s.config.IndexEvents && s.indexer != nil {
		start := time.Now()
		err := s.indexer.IndexDocument(ctx, s.config.EventIndex, IndexedEvent{
			Event:      input.Event,
			Timestamp:  input.Timestamp,
			ReceivedAt: s.now().UTC().Format(time.RFC3339),
			Data:       input.Data,
		})
		metrics.ObserveCollaborator("event_index", start, err)
		if err != nil {
			s.logger.Error("event indexing failed", map[string]interface{}{
				"event": input.Event,
				"index": s.config.EventIndex,
				"error": err.Error(),
			})
		} else {
			output.Indexed = true
		}
	}

	s.logger.Info("event relayed", map[string]interface{}{
		"event":     input.Event,
		"timestamp": input.Timestamp,
		"sheets":    output.SheetsDelivered,
		"indexed":   output.Indexed,
	})
	return output, nil
}

// SheetsPayload flattens an event into one spreadsheet row. The timestamp is
// rendered in Vietnam time; keys in Data win over timestamp and event.
func SheetsPayload(input *Input) map[string]interface{} {
	payload := map[string]interface{}{
		"timestamp": renderTimestamp(input.Timestamp),
		"event":     input.Event,
	}
	for k, v := range input.Data {
		payload[k] = v
	}
	return payload
}

func renderTimestamp(raw string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return format.Timestamp(t)
		}
	}
	return raw
}
