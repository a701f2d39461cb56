// internal/models/email.go
package models

type EmailType string

const (
	EmailIntroduction EmailType = "introduction"
	EmailFollowUp     EmailType = "follow-up"
	EmailClosing      EmailType = "closing"
)

// EmailTemplate is one drafted sales email.
type EmailTemplate struct {
	Title   string    `json:"title"`
	Type    EmailType `json:"type"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
}

// LeadNotification is the data block of a lead notification email.
type LeadNotification struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Company       string   `json:"company,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	Budget        string   `json:"budget,omitempty"`
	Style         string   `json:"style,omitempty"`
	Modules       []string `json:"modules,omitempty"`
	TotalAmount   int64    `json:"totalAmount,omitempty"`
	MonthlyAmount int64    `json:"monthlyAmount,omitempty"`
	EstimatedDays int      `json:"estimatedDays,omitempty"`
	QuoteNumber   string   `json:"quoteNumber,omitempty"`
}
