package quotedocument

import (
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/models"
)

type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company,omitempty"`
}

// LineItem is one module row of the document. A catalog Module decodes
// into it directly.
type LineItem struct {
	NameVi        string `json:"nameVi"`
	DescriptionVi string `json:"descriptionVi"`
	BasePrice     int64  `json:"basePrice"`
	MonthlyPrice  int64  `json:"monthlyPrice"`
	EstimatedDays int    `json:"estimatedDays"`
}

type Input struct {
	QuoteNumber string                  `json:"quoteNumber"`
	Industry    string                  `json:"industry"`
	Lead        Customer                `json:"lead"`
	Modules     []LineItem              `json:"modules"`
	Calculation models.QuoteCalculation `json:"calculation"`
}

type Output struct {
	Filename string
	HTML     string
}

type ServiceDependencies struct {
	Logger logger.Logger
}

// LineItems converts selected modules into document rows.
func LineItems(selected []models.SelectedModule) []LineItem {
	out := make([]LineItem, 0, len(selected))
	for _, sm := range selected {
		out = append(out, LineItem{
			NameVi:        sm.Module.NameVi,
			DescriptionVi: sm.Module.DescriptionVi,
			BasePrice:     sm.Module.BasePrice,
			MonthlyPrice:  sm.Module.MonthlyPrice,
			EstimatedDays: sm.Module.EstimatedDays,
		})
	}
	return out
}
