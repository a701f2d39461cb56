package leadcapture

import (
	"winhouse-quote/internal/catalog"
	"winhouse-quote/internal/models"
	"winhouse-quote/internal/wizard"
)

// Submission is a wizard snapshot with catalog names resolved, ready to be
// handed to collaborators.
type Submission struct {
	SessionID    string
	State        wizard.State
	Calculation  models.QuoteCalculation
	IndustryName string
	BudgetLabel  string
	StyleName    string
	ModuleNames  []string
}

// NewSubmission resolves display names for state. Unknown ids resolve to
// empty names.
func NewSubmission(cat *catalog.Catalog, sessionID string, state wizard.State, calc models.QuoteCalculation) Submission {
	sub := Submission{
		SessionID:   sessionID,
		State:       state,
		Calculation: calc,
		ModuleNames: make([]string, 0, len(state.SelectedModules)),
	}
	if ind, ok := cat.Industry(state.SelectedIndustry); ok {
		sub.IndustryName = ind.NameVi
	}
	if b, ok := cat.Budget(state.SelectedBudget); ok {
		sub.BudgetLabel = b.LabelVi
	}
	if s, ok := cat.Style(state.SelectedStyle); ok {
		sub.StyleName = s.NameVi
	}
	for _, sm := range state.SelectedModules {
		sub.ModuleNames = append(sub.ModuleNames, sm.Module.NameVi)
	}
	return sub
}

func (s Submission) lead() models.LeadFormData {
	if s.State.Lead == nil {
		return models.LeadFormData{}
	}
	return *s.State.Lead
}

// Notification is the lead notification email payload.
func (s Submission) Notification() models.LeadNotification {
	lead := s.lead()
	return models.LeadNotification{
		Name:          lead.Name,
		Email:         lead.Email,
		Phone:         lead.Phone,
		Company:       lead.Company,
		Industry:      s.IndustryName,
		Budget:        s.BudgetLabel,
		Style:         s.StyleName,
		Modules:       s.ModuleNames,
		TotalAmount:   s.Calculation.Total,
		MonthlyAmount: s.Calculation.MonthlyTotal,
		EstimatedDays: s.Calculation.EstimatedDays,
		QuoteNumber:   s.State.QuoteNumber,
	}
}
