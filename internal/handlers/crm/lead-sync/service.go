package leadsync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"winhouse-quote/internal/common/errors"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/common/metrics"
	"winhouse-quote/internal/common/zoho"
	"winhouse-quote/internal/format"
)

type Service struct {
	config *Config
	logger logger.Logger
	client CRMClient
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	client := deps.Client
	if client == nil && config.OAuthToken != "" {
		client = zoho.NewCRMClient(config.BaseURL, config.OAuthToken, config.Timeout)
	}

	return &Service{
		config: config,
		logger: deps.Logger,
		client: client,
	}
}

// Execute upserts the lead by email: an existing CRM lead is updated with the
// latest quote, otherwise a new one is created.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if s.client == nil {
		return nil, &errors.StandardError{
			Code:      errors.ErrCodeCRMSyncFailed,
			Message:   "Zoho CRM client not configured",
			Details:   "Missing OAuth token",
			Retryable: false,
			Timestamp: time.Now(),
		}
	}

	lead := s.toZohoLead(input)
	start := time.Now()

	existing, err := s.client.SearchLeads(ctx, input.Lead.Email)
	if err != nil {
		s.logger.Warn("Failed to search for existing lead", map[string]interface{}{
			"email": input.Lead.Email,
			"error": err.Error(),
		})
	} else if len(existing) > 0 {
		leadID := existing[0].ID
		err := s.client.UpdateLead(ctx, leadID, lead)
		metrics.ObserveCollaborator("crm", start, err)
		if err != nil {
			return nil, crmError("Failed to update CRM lead", err)
		}

		s.logger.Info("CRM lead updated", map[string]interface{}{
			"leadId": leadID,
			"email":  input.Lead.Email,
		})
		return &Output{
			Success:     true,
			Message:     "Lead already exists in CRM, updated",
			LeadID:      leadID,
			CRMProvider: "zoho",
		}, nil
	}

	leadID, err := s.client.CreateLead(ctx, lead)
	metrics.ObserveCollaborator("crm", start, err)
	if err != nil {
		return nil, crmError("Failed to create CRM lead", err)
	}

	s.logger.Info("CRM lead created", map[string]interface{}{
		"leadId": leadID,
		"email":  input.Lead.Email,
	})
	return &Output{
		Success:     true,
		Message:     "CRM lead created successfully",
		LeadID:      leadID,
		Created:     true,
		CRMProvider: "zoho",
	}, nil
}

func crmError(msg string, err error) *errors.StandardError {
	return &errors.StandardError{
		Code:      errors.ErrCodeCRMSyncFailed,
		Message:   msg,
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now(),
	}
}

func (s *Service) toZohoLead(input *Input) *zoho.Lead {
	last, first := SplitName(input.Lead.Name)
	return &zoho.Lead{
		LastName:    last,
		FirstName:   first,
		Email:       input.Lead.Email,
		Phone:       input.Lead.Phone,
		Company:     input.Lead.Company,
		Designation: input.Lead.Role.Label(),
		Source:      s.config.LeadSource,
		Description: Description(input),
	}
}

// SplitName splits a Vietnamese full name into the family name and the rest.
// "Nguyễn Văn A" becomes ("Nguyễn", "Văn A").
func SplitName(full string) (last, first string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// Description summarizes the quote for the CRM lead record.
func Description(input *Input) string {
	var lines []string
	if input.QuoteNumber != "" {
		lines = append(lines, "Mã báo giá: "+input.QuoteNumber)
	}
	if input.Industry != "" {
		lines = append(lines, "Ngành nghề: "+input.Industry)
	}
	if input.TotalAmount > 0 {
		lines = append(lines, "Tổng chi phí: "+format.Currency(input.TotalAmount))
	}
	if len(input.Modules) > 0 {
		lines = append(lines, fmt.Sprintf("Tính năng (%d): %s", len(input.Modules), strings.Join(input.Modules, ", ")))
	}
	if input.Lead.Notes != "" {
		lines = append(lines, "Ghi chú: "+input.Lead.Notes)
	}
	return strings.Join(lines, "\n")
}
