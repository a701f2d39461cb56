package server

import (
	"context"
	stderrors "errors"
	"net/http"

	"winhouse-quote/internal/common/errors"
	commonhttp "winhouse-quote/internal/common/http"
	"winhouse-quote/internal/common/metrics"
	"winhouse-quote/internal/leadcapture"
	"winhouse-quote/internal/leadform"
	"winhouse-quote/internal/models"
	"winhouse-quote/internal/session"
	"winhouse-quote/internal/wizard"
)

// SessionView is the wizard as the client renders it.
type SessionView struct {
	SessionID           string                  `json:"sessionId"`
	State               wizard.State            `json:"state"`
	StepNumber          int                     `json:"stepNumber"`
	StepTitle           string                  `json:"stepTitle"`
	CanProceed          bool                    `json:"canProceed"`
	CanGoTo             map[wizard.Step]bool    `json:"canGoTo"`
	Calculation         models.QuoteCalculation `json:"calculation"`
	DiscountHint        string                  `json:"discountHint,omitempty"`
	MissingDependencies map[string][]string     `json:"missingDependencies,omitempty"`
}

// action mutates a loaded wizard. A returned error aborts the request
// without saving.
type action func(r *http.Request, store *wizard.Store) error

func (s *Server) view(id string, store *wizard.Store) SessionView {
	state := store.State()
	calc := store.Calculation()

	v := SessionView{
		SessionID:   id,
		State:       state,
		StepNumber:  state.CurrentStep.Number(),
		StepTitle:   state.CurrentStep.Title(),
		CanProceed:  wizard.StepReady(state, state.CurrentStep),
		CanGoTo:     make(map[wizard.Step]bool, len(wizard.Steps())),
		Calculation: calc,
	}
	for _, step := range wizard.Steps() {
		v.CanGoTo[step] = store.CanGoToStep(step)
	}
	if calc.ModuleCount > 0 {
		if hint, ok := s.calculator.NextTier(calc.ModuleCount); ok {
			v.DiscountHint = hint.Message()
		}
	}
	if missing := s.catalog.MissingDependencies(state.ModuleIDs()); len(missing) > 0 {
		v.MissingDependencies = missing
	}
	return v
}

func (s *Server) load(ctx context.Context, id string) (*wizard.Store, error) {
	state, err := s.sessions.Load(ctx, id)
	if stderrors.Is(err, session.ErrNotFound) {
		return nil, errors.NewSessionNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewSessionStoreFailedError(err)
	}
	return wizard.Restore(state, wizard.WithCalculator(s.calculator)), nil
}

// save persists store. The quote number is issued the first time the wizard
// is saved on the result step; issued reports whether that happened now.
func (s *Server) save(ctx context.Context, id string, store *wizard.Store, before wizard.Step) (issued bool, err error) {
	if store.CurrentStep() == wizard.StepResult && store.State().QuoteNumber == "" {
		store.EnsureQuoteNumber(s.quoteNumbers)
		issued = true
	}
	if err := s.sessions.Save(ctx, id, store.State()); err != nil {
		return false, errors.NewSessionStoreFailedError(err)
	}
	if store.CurrentStep() != before {
		metrics.StepTransitions.WithLabelValues(string(store.CurrentStep())).Inc()
	}
	return issued, nil
}

func (s *Server) submission(id string, store *wizard.Store) leadcapture.Submission {
	return leadcapture.NewSubmission(s.catalog, id, store.State(), store.Calculation())
}

func (s *Server) quoteIssued(ctx context.Context, sub leadcapture.Submission) {
	s.logger.Info("quote issued", map[string]interface{}{
		"sessionId":   sub.SessionID,
		"quoteNumber": sub.State.QuoteNumber,
		"total":       sub.Calculation.Total,
	})
	s.obs.RecordWizardEvent(ctx, string(models.EventQuoteCreated))
	s.dispatcher.QuoteCreated(sub)
}

// mutate loads the session, applies fn, saves and responds with the view.
func (s *Server) mutate(fn action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		store, err := s.load(r.Context(), id)
		if err != nil {
			s.errors.HandleHTTPError(w, r, err)
			return
		}

		before := store.CurrentStep()
		if err := fn(r, store); err != nil {
			s.errors.HandleHTTPError(w, r, err)
			return
		}

		issued, err := s.save(r.Context(), id, store, before)
		if err != nil {
			s.errors.HandleHTTPError(w, r, err)
			return
		}
		if issued {
			s.quoteIssued(r.Context(), s.submission(id, store))
		}
		commonhttp.WriteJSON(w, http.StatusOK, s.view(id, store))
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, state, err := s.sessions.Create(r.Context())
	if err != nil {
		s.errors.HandleHTTPError(w, r, errors.NewSessionStoreFailedError(err))
		return
	}
	metrics.SessionsCreated.Inc()
	s.logger.Debug("session created", map[string]interface{}{"sessionId": id})

	store := wizard.Restore(state, wizard.WithCalculator(s.calculator))
	commonhttp.WriteJSON(w, http.StatusCreated, s.view(id, store))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	store, err := s.load(r.Context(), id)
	if err != nil {
		s.errors.HandleHTTPError(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, s.view(id, store))
}

// nextStep refuses to leave a step whose input is missing. The lead step in
// particular can only be left by submitting the form.
func (s *Server) nextStep(r *http.Request, store *wizard.Store) error {
	current := store.CurrentStep()
	if !wizard.StepReady(store.State(), current) {
		return errors.NewStepIncompleteError(string(current))
	}
	store.NextStep()
	return nil
}

func (s *Server) prevStep(r *http.Request, store *wizard.Store) error {
	store.PrevStep()
	return nil
}

// jumpToStep allows any reachable step. Jumping forward completes the
// current step, so it must be ready as with nextStep.
func (s *Server) jumpToStep(r *http.Request, store *wizard.Store) error {
	name, err := decodeField(r, stepValidator, "step")
	if err != nil {
		return err
	}
	target, err := wizard.ParseStep(name)
	if err != nil {
		return errors.NewInvalidStepError(name)
	}

	current := store.CurrentStep()
	if !store.CanGoToStep(target) {
		return errors.NewStepNotAllowedError(string(current), string(target))
	}
	if target.Index() > current.Index() && !wizard.StepReady(store.State(), current) {
		return errors.NewStepIncompleteError(string(current))
	}
	store.SetStep(target)
	return nil
}

func (s *Server) reset(r *http.Request, store *wizard.Store) error {
	store.Reset()
	return nil
}

func (s *Server) selectIndustry(r *http.Request, store *wizard.Store) error {
	slug, err := decodeField(r, industryValidator, "industry")
	if err != nil {
		return err
	}
	if _, ok := s.catalog.Industry(slug); !ok {
		return errors.NewIndustryNotFoundError(slug)
	}
	store.SetIndustry(slug)
	return nil
}

func (s *Server) selectBudget(r *http.Request, store *wizard.Store) error {
	id, err := decodeField(r, budgetValidator, "budget")
	if err != nil {
		return err
	}
	budget := models.BudgetRange(id)
	if _, ok := s.catalog.Budget(budget); !ok {
		return errors.NewBudgetNotFoundError(id)
	}
	store.SetBudget(budget)
	return nil
}

func (s *Server) selectStyle(r *http.Request, store *wizard.Store) error {
	id, err := decodeField(r, styleValidator, "style")
	if err != nil {
		return err
	}
	if _, ok := s.catalog.Style(id); !ok {
		return errors.NewStyleNotFoundError(id)
	}
	store.SetStyle(id)
	return nil
}

// addModule only accepts modules offered for the selected industry.
func (s *Server) addModule(r *http.Request, store *wizard.Store) error {
	id, err := decodeField(r, moduleValidator, "moduleId")
	if err != nil {
		return err
	}
	m, ok := s.catalog.Module(id)
	if !ok {
		return errors.NewModuleNotFoundError(id)
	}
	industry := store.State().SelectedIndustry
	if !m.AppliesTo(industry) {
		return errors.NewModuleNotAvailableError(id, industry)
	}
	store.AddModule(m)
	return nil
}

func (s *Server) removeModule(r *http.Request, store *wizard.Store) error {
	store.RemoveModule(r.PathValue("moduleId"))
	return nil
}

func (s *Server) clearModules(r *http.Request, store *wizard.Store) error {
	store.ClearModules()
	return nil
}

// handleLead validates the contact form, stores it, advances to the result
// step and starts the collaborator fan-out. An invalid form leaves the
// session untouched.
func (s *Server) handleLead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	store, err := s.load(r.Context(), id)
	if err != nil {
		s.errors.HandleHTTPError(w, r, err)
		return
	}

	current := store.CurrentStep()
	if current != wizard.StepLeadCapture {
		s.errors.HandleHTTPError(w, r, errors.NewStepNotAllowedError(string(current), string(wizard.StepLeadCapture)))
		return
	}
	if store.State().Lead != nil {
		s.errors.HandleHTTPError(w, r, errors.NewLeadCapturedError(id))
		return
	}

	raw, err := commonhttp.DecodeObject(r)
	if err != nil {
		s.errors.HandleHTTPError(w, r, errors.NewInvalidPayloadError(err.Error()))
		return
	}
	lead, fieldErrors := leadform.Decode(raw)
	if len(fieldErrors) > 0 {
		metrics.LeadsCaptured.WithLabelValues("invalid").Inc()
		s.errors.HandleHTTPError(w, r, errors.NewValidationError(fieldErrors))
		return
	}

	store.SetLead(lead)
	store.NextStep()

	issued, err := s.save(r.Context(), id, store, current)
	if err != nil {
		metrics.LeadsCaptured.WithLabelValues("error").Inc()
		s.errors.HandleHTTPError(w, r, err)
		return
	}
	metrics.LeadsCaptured.WithLabelValues("captured").Inc()
	s.obs.RecordWizardEvent(r.Context(), string(models.EventLeadCaptured))

	sub := s.submission(id, store)
	s.logger.Info("lead captured", map[string]interface{}{
		"sessionId":   id,
		"quoteNumber": sub.State.QuoteNumber,
		"industry":    sub.State.SelectedIndustry,
		"moduleCount": sub.Calculation.ModuleCount,
	})
	s.dispatcher.LeadCaptured(sub)
	if issued {
		s.quoteIssued(r.Context(), sub)
	}

	commonhttp.WriteJSON(w, http.StatusOK, s.view(id, store))
}
