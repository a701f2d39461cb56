package wizard

import (
	"errors"
	"fmt"
)

var ErrUnknownStep = errors.New("UNKNOWN_STEP")

// Step is one screen of the quote wizard. Steps are strictly ordered.
type Step string

const (
	StepWelcome     Step = "welcome"
	StepIndustry    Step = "industry"
	StepBudget      Step = "budget"
	StepBuilder     Step = "builder"
	StepStyle       Step = "style"
	StepLeadCapture Step = "lead-capture"
	StepResult      Step = "result"
)

// Steps returns the wizard order.
func Steps() []Step {
	return []Step{StepWelcome, StepIndustry, StepBudget, StepBuilder, StepStyle, StepLeadCapture, StepResult}
}

// Index is the zero-based position of s, or -1 for an unknown step.
func (s Step) Index() int {
	switch s {
	case StepWelcome:
		return 0
	case StepIndustry:
		return 1
	case StepBudget:
		return 2
	case StepBuilder:
		return 3
	case StepStyle:
		return 4
	case StepLeadCapture:
		return 5
	case StepResult:
		return 6
	}
	return -1
}

// Number is the 1-based position shown in the progress bar.
func (s Step) Number() int {
	return s.Index() + 1
}

func (s Step) Valid() bool {
	return s.Index() >= 0
}

// Title is the Vietnamese heading of the step.
func (s Step) Title() string {
	switch s {
	case StepWelcome:
		return "Chào mừng"
	case StepIndustry:
		return "Ngành nghề"
	case StepBudget:
		return "Ngân sách"
	case StepBuilder:
		return "Tính năng"
	case StepStyle:
		return "Phong cách"
	case StepLeadCapture:
		return "Thông tin liên hệ"
	case StepResult:
		return "Báo giá"
	}
	return string(s)
}

// ParseStep validates a step name.
func ParseStep(name string) (Step, error) {
	s := Step(name)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStep, name)
	}
	return s, nil
}

func stepAt(i int) Step {
	return Steps()[i]
}

// StepReady reports whether the visitor has supplied what step needs before
// moving past it.
func StepReady(state State, step Step) bool {
	switch step {
	case StepWelcome:
		return true
	case StepIndustry:
		return state.SelectedIndustry != ""
	case StepBudget:
		return state.SelectedBudget != ""
	case StepBuilder:
		return len(state.SelectedModules) > 0
	case StepStyle:
		return state.SelectedStyle != ""
	case StepLeadCapture:
		return state.Lead != nil
	case StepResult:
		return true
	}
	return false
}
