// Package wizard holds one visitor's quote wizard: the step machine and the
// selection store. A Store is owned by a single request at a time and is not
// safe for concurrent use.
package wizard

import (
	"time"

	"winhouse-quote/internal/models"
	"winhouse-quote/internal/pricing"
)

// State is everything a session remembers between requests.
type State struct {
	CurrentStep      Step                    `json:"currentStep"`
	CompletedSteps   []Step                  `json:"completedSteps"`
	SelectedIndustry string                  `json:"selectedIndustry,omitempty"`
	SelectedBudget   models.BudgetRange      `json:"selectedBudget,omitempty"`
	SelectedModules  []models.SelectedModule `json:"selectedModules"`
	SelectedStyle    string                  `json:"selectedStyle,omitempty"`
	Lead             *models.LeadFormData    `json:"lead,omitempty"`
	QuoteNumber      string                  `json:"quoteNumber,omitempty"`
}

// InitialState is a fresh wizard on the welcome step.
func InitialState() State {
	return State{
		CurrentStep:     StepWelcome,
		CompletedSteps:  []Step{},
		SelectedModules: []models.SelectedModule{},
	}
}

func (s State) clone() State {
	out := s
	out.CompletedSteps = append([]Step{}, s.CompletedSteps...)
	out.SelectedModules = append([]models.SelectedModule{}, s.SelectedModules...)
	if s.Lead != nil {
		lead := *s.Lead
		out.Lead = &lead
	}
	return out
}

// ModuleIDs lists the selected module ids in selection order.
func (s State) ModuleIDs() []string {
	ids := make([]string, len(s.SelectedModules))
	for i, m := range s.SelectedModules {
		ids[i] = m.Module.ID
	}
	return ids
}

type Store struct {
	state      State
	now        func() time.Time
	calculator *pricing.Calculator
}

type Option func(*Store)

// WithClock sets the timestamp source for AddModule.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithCalculator sets the discount tier table used by Calculation.
func WithCalculator(c *pricing.Calculator) Option {
	return func(s *Store) { s.calculator = c }
}

// New returns a store in the initial state.
func New(opts ...Option) *Store {
	return Restore(InitialState(), opts...)
}

// Restore resumes a store from a persisted state.
func Restore(state State, opts ...Option) *Store {
	s := &Store{
		state:      state.clone(),
		now:        time.Now,
		calculator: pricing.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a deep copy, safe to hand to collaborators.
func (s *Store) State() State {
	return s.state.clone()
}

// Reset discards every choice and returns to welcome.
func (s *Store) Reset() {
	s.state = InitialState()
}

// --- selection ---

// SetIndustry selects an industry and always clears the selected modules,
// since module eligibility depends on the industry.
func (s *Store) SetIndustry(slug string) {
	s.state.SelectedIndustry = slug
	s.state.SelectedModules = []models.SelectedModule{}
}

func (s *Store) SetBudget(budget models.BudgetRange) {
	s.state.SelectedBudget = budget
}

func (s *Store) SetStyle(styleID string) {
	s.state.SelectedStyle = styleID
}

// AddModule selects m once. Adding an already selected id is a no-op.
func (s *Store) AddModule(m models.Module) {
	if s.IsModuleSelected(m.ID) {
		return
	}
	s.state.SelectedModules = append(s.state.SelectedModules, models.SelectedModule{
		Module:   m,
		Quantity: 1,
		AddedAt:  s.now().UTC(),
	})
}

// RemoveModule drops the module with id; unknown ids are ignored.
func (s *Store) RemoveModule(id string) {
	kept := s.state.SelectedModules[:0:0]
	for _, m := range s.state.SelectedModules {
		if m.Module.ID != id {
			kept = append(kept, m)
		}
	}
	s.state.SelectedModules = kept
}

func (s *Store) ClearModules() {
	s.state.SelectedModules = []models.SelectedModule{}
}

func (s *Store) IsModuleSelected(id string) bool {
	for _, m := range s.state.SelectedModules {
		if m.Module.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) ModuleCount() int {
	return len(s.state.SelectedModules)
}

// SetLead stores the contact record as given. Callers validate first.
func (s *Store) SetLead(lead models.LeadFormData) {
	s.state.Lead = &lead
}

// EnsureQuoteNumber assigns a quote number from generate the first time it
// is called and returns the stored number afterwards.
func (s *Store) EnsureQuoteNumber(generate func() string) string {
	if s.state.QuoteNumber == "" {
		s.state.QuoteNumber = generate()
	}
	return s.state.QuoteNumber
}

// Calculation is recomputed from the selected modules on every call.
func (s *Store) Calculation() models.QuoteCalculation {
	return s.calculator.Calculate(s.state.SelectedModules)
}

// --- navigation ---

func (s *Store) CurrentStep() Step {
	return s.state.CurrentStep
}

func (s *Store) IsCompleted(step Step) bool {
	for _, done := range s.state.CompletedSteps {
		if done == step {
			return true
		}
	}
	return false
}

func (s *Store) markCompleted(step Step) {
	if !s.IsCompleted(step) {
		s.state.CompletedSteps = append(s.state.CompletedSteps, step)
	}
}

// NextStep completes the current step and advances. It does nothing on the
// last step.
func (s *Store) NextStep() {
	i := s.state.CurrentStep.Index()
	if i < 0 || i >= len(Steps())-1 {
		return
	}
	s.markCompleted(s.state.CurrentStep)
	s.state.CurrentStep = stepAt(i + 1)
}

// PrevStep moves back one step without touching the completed set. It does
// nothing on the first step.
func (s *Store) PrevStep() {
	i := s.state.CurrentStep.Index()
	if i <= 0 {
		return
	}
	s.state.CurrentStep = stepAt(i - 1)
}

// SetStep jumps to step without gating. A forward jump completes the current
// step the way NextStep does. Unknown steps are ignored.
func (s *Store) SetStep(step Step) {
	target := step.Index()
	if target < 0 {
		return
	}
	if target > s.state.CurrentStep.Index() {
		s.markCompleted(s.state.CurrentStep)
	}
	s.state.CurrentStep = step
}

// CanGoToStep reports whether step is reachable: any step at or before the
// current one, or a later step whose predecessors are all completed or
// current.
func (s *Store) CanGoToStep(step Step) bool {
	target := step.Index()
	if target < 0 {
		return false
	}
	if target <= s.state.CurrentStep.Index() {
		return true
	}
	for _, before := range Steps()[:target] {
		if !s.IsCompleted(before) && before != s.state.CurrentStep {
			return false
		}
	}
	return true
}
