// internal/models/quote.go
package models

import "time"

// SelectedModule is a module picked in a session. Quantity is always 1.
type SelectedModule struct {
	Module   Module    `json:"module"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}

// QuoteCalculation is derived from the selected modules on every read.
// Amounts are VND.
type QuoteCalculation struct {
	Subtotal        int64 `json:"subtotal"`
	MonthlyTotal    int64 `json:"monthlyTotal"`
	Discount        int64 `json:"discount"`
	DiscountPercent int   `json:"discountPercent"`
	Total           int64 `json:"total"`
	EstimatedDays   int   `json:"estimatedDays"`
	ModuleCount     int   `json:"moduleCount"`
}

type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "draft"
	QuoteSent     QuoteStatus = "sent"
	QuoteViewed   QuoteStatus = "viewed"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
)

// QuoteRecord is a row of the quotes table.
type QuoteRecord struct {
	ID          string           `json:"id"`
	QuoteNumber string           `json:"quoteNumber"`
	SessionID   string           `json:"sessionId"`
	IndustryID  string           `json:"industryId"`
	BudgetRange BudgetRange      `json:"budgetRange"`
	StyleID     string           `json:"styleId"`
	ModuleIDs   []string         `json:"moduleIds"`
	Calculation QuoteCalculation `json:"calculation"`
	ValidUntil  time.Time        `json:"validUntil"`
	Status      QuoteStatus      `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
}
