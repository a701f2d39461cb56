package leadsync

import (
	"context"

	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/common/zoho"
	"winhouse-quote/internal/models"
)

type Input struct {
	Lead        models.LeadFormData `json:"lead"`
	QuoteNumber string              `json:"quoteNumber,omitempty"`
	Industry    string              `json:"industry,omitempty"`
	TotalAmount int64               `json:"totalAmount,omitempty"`
	Modules     []string            `json:"modules,omitempty"`
}

type Output struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	LeadID      string `json:"leadId"`
	Created     bool   `json:"created"`
	CRMProvider string `json:"crmProvider"`
}

// CRMClient is the part of the Zoho client used to upsert leads.
type CRMClient interface {
	SearchLeads(ctx context.Context, email string) ([]zoho.Lead, error)
	CreateLead(ctx context.Context, lead *zoho.Lead) (string, error)
	UpdateLead(ctx context.Context, leadID string, lead *zoho.Lead) error
}

type ServiceDependencies struct {
	Logger logger.Logger
	Client CRMClient
}
