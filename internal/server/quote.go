package server

import (
	"net/http"

	"winhouse-quote/internal/common/errors"
	commonhttp "winhouse-quote/internal/common/http"
	"winhouse-quote/internal/format"
	emailgenerate "winhouse-quote/internal/handlers/ai/email-generate"
	quotedocument "winhouse-quote/internal/handlers/document/quote-document"
	"winhouse-quote/internal/leadcapture"
	"winhouse-quote/internal/models"
	"winhouse-quote/internal/quote"
	"winhouse-quote/internal/wizard"
)

// QuoteView is the result screen.
type QuoteView struct {
	QuoteNumber    string                  `json:"quoteNumber"`
	Industry       string                  `json:"industry"`
	Budget         string                  `json:"budget"`
	Style          string                  `json:"style"`
	Lead           *models.LeadFormData    `json:"lead"`
	Modules        []models.Module         `json:"modules"`
	Calculation    models.QuoteCalculation `json:"calculation"`
	TotalFormatted string                  `json:"totalFormatted"`
	EstimatedTime  string                  `json:"estimatedTime"`
	ValidUntil     string                  `json:"validUntil"`
}

// loadResult loads a session that has reached the result step. A session
// sitting on result without a number gets one now.
func (s *Server) loadResult(w http.ResponseWriter, r *http.Request) (leadcapture.Submission, bool) {
	id := r.PathValue("id")
	store, err := s.load(r.Context(), id)
	if err != nil {
		s.errors.HandleHTTPError(w, r, err)
		return leadcapture.Submission{}, false
	}
	if store.CurrentStep() != wizard.StepResult {
		s.errors.HandleHTTPError(w, r, errors.NewQuoteNotReadyError(string(store.CurrentStep())))
		return leadcapture.Submission{}, false
	}

	if store.State().QuoteNumber == "" {
		issued, err := s.save(r.Context(), id, store, store.CurrentStep())
		if err != nil {
			s.errors.HandleHTTPError(w, r, err)
			return leadcapture.Submission{}, false
		}
		if issued {
			s.quoteIssued(r.Context(), s.submission(id, store))
		}
	}
	return s.submission(id, store), true
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.loadResult(w, r)
	if !ok {
		return
	}

	modules := make([]models.Module, 0, len(sub.State.SelectedModules))
	for _, sm := range sub.State.SelectedModules {
		modules = append(modules, sm.Module)
	}
	commonhttp.WriteJSON(w, http.StatusOK, QuoteView{
		QuoteNumber:    sub.State.QuoteNumber,
		Industry:       sub.IndustryName,
		Budget:         sub.BudgetLabel,
		Style:          sub.StyleName,
		Lead:           sub.State.Lead,
		Modules:        modules,
		Calculation:    sub.Calculation,
		TotalFormatted: format.Currency(sub.Calculation.Total),
		EstimatedTime:  format.EstimatedTime(sub.Calculation.EstimatedDays),
		ValidUntil:     format.Date(quote.ValidUntil(s.now())),
	})
}

func (s *Server) handleQuoteDocument(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.loadResult(w, r)
	if !ok {
		return
	}

	input := &quotedocument.Input{
		QuoteNumber: sub.State.QuoteNumber,
		Industry:    sub.IndustryName,
		Modules:     quotedocument.LineItems(sub.State.SelectedModules),
		Calculation: sub.Calculation,
	}
	if lead := sub.State.Lead; lead != nil {
		input.Lead = quotedocument.Customer{
			Name:    lead.Name,
			Email:   lead.Email,
			Phone:   lead.Phone,
			Company: lead.Company,
		}
	}

	s.documents.Write(r.Context(), w, input)
	s.obs.RecordWizardEvent(r.Context(), string(models.EventQuoteDownloaded))
	s.dispatcher.QuoteDownloaded(sub)
}

func (s *Server) handleQuoteEmails(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.loadResult(w, r)
	if !ok {
		return
	}

	input := emailgenerate.Input{
		IndustryName: sub.IndustryName,
		Modules:      make([]emailgenerate.ModuleSummary, 0, len(sub.State.SelectedModules)),
		TotalAmount:  sub.Calculation.Total,
	}
	for _, sm := range sub.State.SelectedModules {
		input.Modules = append(input.Modules, emailgenerate.ModuleSummary{
			Name:        sm.Module.NameVi,
			Description: sm.Module.DescriptionVi,
		})
	}
	if lead := sub.State.Lead; lead != nil {
		input.LeadName = lead.Name
		input.CompanyName = lead.Company
	}

	commonhttp.WriteJSON(w, http.StatusOK, emailgenerate.Output{
		Success: true,
		Emails:  s.emails.Generate(r.Context(), input),
	})
}
