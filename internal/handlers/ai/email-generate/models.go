package emailgenerate

import (
	"context"

	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/models"
)

type ModuleSummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Input struct {
	IndustryName string          `json:"industryName"`
	Modules      []ModuleSummary `json:"modules"`
	TotalAmount  int64           `json:"totalAmount"`
	LeadName     string          `json:"leadName"`
	CompanyName  string          `json:"companyName,omitempty"`
}

type Output struct {
	Success bool                   `json:"success"`
	Emails  []models.EmailTemplate `json:"emails"`

	// FallbackReason is set when the canned sequence was returned.
	FallbackReason string `json:"-"`
}

// Completer runs one chat completion and returns the assistant text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type ServiceDependencies struct {
	Logger    logger.Logger
	Completer Completer
}
