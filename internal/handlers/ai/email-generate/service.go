package emailgenerate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	commonerrors "winhouse-quote/internal/common/errors"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/common/metrics"
	"winhouse-quote/internal/models"
)

var ErrUnparsableContent = errors.New("UNPARSABLE_CONTENT")

const (
	reasonUnconfigured = "unconfigured"
	reasonBackendError = "backend_error"
	reasonUnparsable   = "unparsable"
)

// jsonObject grabs the outermost braces of a reply that may be wrapped in
// prose or code fences.
var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

type Service struct {
	config    *Config
	logger    logger.Logger
	completer Completer
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	completer := deps.Completer
	switch {
	case !config.Enabled:
		completer = nil
	case completer == nil && config.APIKey != "":
		completer = NewOpenAICompleter(config)
	}
	return &Service{
		config:    config,
		logger:    deps.Logger,
		completer: completer,
	}
}

// Execute drafts the three sales emails. It never fails: any backend or
// parsing problem yields the canned sequence.
func (s *Service) Execute(ctx context.Context, input *Input) *Output {
	if s.completer == nil {
		return s.fallback(input, reasonUnconfigured, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	content, err := s.completer.Complete(ctx, systemPrompt, UserPrompt(input))
	metrics.ObserveCollaborator("openai", start, err)
	if err != nil {
		return s.fallback(input, reasonBackendError, err)
	}

	emails, err := ParseEmails(content)
	if err != nil {
		return s.fallback(input, reasonUnparsable, err)
	}

	s.logger.Info("sales emails generated", map[string]interface{}{
		"lead":   input.LeadName,
		"emails": len(emails),
	})
	return &Output{Success: true, Emails: emails}
}

func (s *Service) fallback(input *Input, reason string, err error) *Output {
	metrics.AIFallbacks.WithLabelValues(reason).Inc()
	fields := map[string]interface{}{
		"reason": reason,
		"lead":   input.LeadName,
	}
	if err != nil {
		stdErr := commonerrors.NewAIGenerationFailedError(err)
		if errors.Is(err, context.DeadlineExceeded) {
			stdErr.Code = commonerrors.ErrCodeAITimeout
		}
		fields["code"] = string(stdErr.Code)
		fields["error"] = err.Error()
		s.logger.Warn("email generation failed, using canned emails", fields)
	} else {
		s.logger.Debug("email generation not configured, using canned emails", fields)
	}
	return &Output{
		Success:        true,
		Emails:         FallbackEmails(input),
		FallbackReason: reason,
	}
}

// ParseEmails extracts {"emails": [...]} from a completion.
func ParseEmails(content string) ([]models.EmailTemplate, error) {
	raw := jsonObject.FindString(content)
	if raw == "" {
		return nil, fmt.Errorf("%w: no JSON object in completion", ErrUnparsableContent)
	}

	var parsed struct {
		Emails []models.EmailTemplate `json:"emails"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableContent, err)
	}
	if len(parsed.Emails) == 0 {
		return nil, fmt.Errorf("%w: no emails in completion", ErrUnparsableContent)
	}
	return parsed.Emails, nil
}
