package quotedocument

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/format"
	"winhouse-quote/internal/quote"
)

type Service struct {
	config *Config
	logger logger.Logger
	now    func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		logger: deps.Logger,
		now:    time.Now,
	}
}

// Execute renders the printable quote. The document is dated today and
// valid for quote.ValidityDays.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	issued := s.now()

	var buf bytes.Buffer
	err := documentTemplate.Execute(&buf, documentData{
		Input:          *input,
		Company:        s.config.Company,
		IssuedOn:       format.Date(issued),
		ValidUntil:     format.Date(quote.ValidUntil(issued)),
		DepositPercent: s.config.DepositPercent,
		BalancePercent: 100 - s.config.DepositPercent,
		VATPercent:     s.config.VATPercent,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	s.logger.Info("quote document rendered", map[string]interface{}{
		"quoteNumber": input.QuoteNumber,
		"modules":     len(input.Modules),
		"total":       input.Calculation.Total,
	})

	return &Output{
		Filename: Filename(s.config.FilenamePrefix, input.QuoteNumber),
		HTML:     buf.String(),
	}, nil
}

// Filename is the attachment name offered to the browser.
func Filename(prefix, quoteNumber string) string {
	return prefix + quoteNumber + ".html"
}
