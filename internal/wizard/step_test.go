package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winhouse-quote/internal/models"
)

func TestStep_OrderAndParse(t *testing.T) {
	for i, s := range Steps() {
		assert.Equal(t, i, s.Index())
		assert.Equal(t, i+1, s.Number())

		parsed, err := ParseStep(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStep("checkout")
	assert.True(t, errors.Is(err, ErrUnknownStep))
	assert.Equal(t, -1, Step("checkout").Index())
	assert.Equal(t, "Thông tin liên hệ", StepLeadCapture.Title())
}

func TestNextStep(t *testing.T) {
	s := New()
	for _, want := range Steps()[1:] {
		s.NextStep()
		assert.Equal(t, want, s.CurrentStep())
	}

	assert.Equal(t, Steps()[:6], s.State().CompletedSteps)

	s.NextStep()
	assert.Equal(t, StepResult, s.CurrentStep())
	assert.Len(t, s.State().CompletedSteps, 6)
}

func TestNextStep_DoesNotDuplicateCompleted(t *testing.T) {
	s := New()
	s.NextStep() // industry
	s.PrevStep() // welcome again
	s.NextStep()

	assert.Equal(t, []Step{StepWelcome}, s.State().CompletedSteps)
}

func TestPrevStep(t *testing.T) {
	s := New()
	s.PrevStep()
	assert.Equal(t, StepWelcome, s.CurrentStep())
	assert.Empty(t, s.State().CompletedSteps)

	s.NextStep()
	s.NextStep()
	s.PrevStep()
	assert.Equal(t, StepIndustry, s.CurrentStep())
	assert.Equal(t, []Step{StepWelcome, StepIndustry}, s.State().CompletedSteps)
}

func TestSetStep(t *testing.T) {
	t.Run("forward jump completes current", func(t *testing.T) {
		s := New()
		s.SetStep(StepBuilder)
		assert.Equal(t, StepBuilder, s.CurrentStep())
		assert.Equal(t, []Step{StepWelcome}, s.State().CompletedSteps)
	})

	t.Run("backward jump leaves completed alone", func(t *testing.T) {
		s := New()
		s.NextStep()
		s.NextStep()
		s.SetStep(StepWelcome)
		assert.Equal(t, StepWelcome, s.CurrentStep())
		assert.Equal(t, []Step{StepWelcome, StepIndustry}, s.State().CompletedSteps)
	})

	t.Run("unknown step ignored", func(t *testing.T) {
		s := New()
		s.SetStep("nowhere")
		assert.Equal(t, StepWelcome, s.CurrentStep())
	})
}

func TestCanGoToStep(t *testing.T) {
	s := New()
	assert.False(t, s.CanGoToStep(StepResult))
	assert.True(t, s.CanGoToStep(StepWelcome))
	assert.True(t, s.CanGoToStep(StepIndustry), "next step only needs the current one")
	assert.False(t, s.CanGoToStep(StepBudget))
	assert.False(t, s.CanGoToStep("nowhere"))

	for s.CurrentStep() != StepLeadCapture {
		s.NextStep()
	}
	assert.True(t, s.CanGoToStep(StepResult))

	s.SetStep(StepIndustry)
	assert.True(t, s.CanGoToStep(StepLeadCapture), "completed steps stay completed after going back")
	assert.False(t, s.CanGoToStep(StepResult), "lead capture was never completed")
}

func TestCanGoToStep_GapBlocksForwardJump(t *testing.T) {
	s := New()
	s.SetStep(StepBuilder) // completes welcome only
	s.SetStep(StepIndustry)

	assert.True(t, s.CanGoToStep(StepBudget))
	assert.False(t, s.CanGoToStep(StepStyle), "budget was never completed")
}

func TestStepReady(t *testing.T) {
	state := InitialState()
	assert.True(t, StepReady(state, StepWelcome))
	assert.False(t, StepReady(state, StepIndustry))
	assert.False(t, StepReady(state, StepBudget))
	assert.False(t, StepReady(state, StepBuilder))
	assert.False(t, StepReady(state, StepStyle))
	assert.False(t, StepReady(state, StepLeadCapture))
	assert.True(t, StepReady(state, StepResult))
	assert.False(t, StepReady(state, "nowhere"))

	state.SelectedIndustry = "business"
	state.SelectedBudget = models.Budget20To50
	state.SelectedModules = []models.SelectedModule{{Module: models.Module{ID: "seo"}, Quantity: 1}}
	state.SelectedStyle = "corporate"
	state.Lead = &models.LeadFormData{Name: "An"}
	for _, step := range Steps() {
		assert.True(t, StepReady(state, step), step)
	}
}
