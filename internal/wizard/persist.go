package wizard

import (
	"encoding/json"
	"errors"
	"fmt"

	"winhouse-quote/internal/models"
)

var (
	ErrUnsupportedVersion = errors.New("UNSUPPORTED_STATE_VERSION")
	ErrCorruptState       = errors.New("CORRUPT_STATE")
)

const stateVersion = 1

type envelope struct {
	Version int   `json:"version"`
	State   State `json:"state"`
}

// Marshal serializes a wizard state for the session store.
func Marshal(state State) ([]byte, error) {
	return json.Marshal(envelope{Version: stateVersion, State: state})
}

// Unmarshal restores a state written by Marshal and checks it is one the
// step machine could have produced.
func Unmarshal(data []byte) (State, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if env.Version != stateVersion {
		return State{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}

	state := env.State
	if err := check(state); err != nil {
		return State{}, err
	}
	if state.CompletedSteps == nil {
		state.CompletedSteps = []Step{}
	}
	if state.SelectedModules == nil {
		state.SelectedModules = []models.SelectedModule{}
	}
	return state, nil
}

func check(state State) error {
	if !state.CurrentStep.Valid() {
		return fmt.Errorf("%w: current step %q", ErrCorruptState, state.CurrentStep)
	}

	seenSteps := map[Step]bool{}
	for _, step := range state.CompletedSteps {
		if !step.Valid() {
			return fmt.Errorf("%w: completed step %q", ErrCorruptState, step)
		}
		if seenSteps[step] {
			return fmt.Errorf("%w: step %q completed twice", ErrCorruptState, step)
		}
		seenSteps[step] = true
	}

	seenModules := map[string]bool{}
	for _, m := range state.SelectedModules {
		if m.Module.ID == "" {
			return fmt.Errorf("%w: module without id", ErrCorruptState)
		}
		if seenModules[m.Module.ID] {
			return fmt.Errorf("%w: module %s selected twice", ErrCorruptState, m.Module.ID)
		}
		if m.Quantity != 1 {
			return fmt.Errorf("%w: module %s has quantity %d", ErrCorruptState, m.Module.ID, m.Quantity)
		}
		if m.Module.BasePrice < 0 || m.Module.MonthlyPrice < 0 || m.Module.EstimatedDays < 0 {
			return fmt.Errorf("%w: module %s has negative amounts", ErrCorruptState, m.Module.ID)
		}
		seenModules[m.Module.ID] = true
	}
	return nil
}
