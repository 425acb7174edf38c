package domain

import (
	"fmt"
	"strings"
)

// State is an entity lifecycle token. Tokens are case-sensitive; each entity
// kind declares its own vocabulary.
type State string

const (
	StateCreated   State = "CREATED"
	StateReady     State = "READY"
	StateRunning   State = "RUNNING"
	StateCompleted State = "COMPLETED"
	StateError     State = "ERROR"
)

// Per-kind lifecycle vocabularies. New kinds bring their own set; the
// normalization below never hardcodes one.
var (
	ProjectStates  = []State{StateCreated, StateReady, StateError}
	ArtifactStates = []State{StateCreated, StateReady, StateError}
	DataItemStates = []State{StateCreated, StateReady, StateError}
	FunctionStates = []State{StateCreated, StateReady, StateError}
	WorkflowStates = []State{StateCreated, StateReady, StateError}
	RunStates      = []State{StateCreated, StateRunning, StateCompleted, StateError}
	LogStates      = []State{StateCreated, StateReady, StateError}
)

// InvalidStateError reports a state token outside a kind's vocabulary.
type InvalidStateError struct {
	Value   string
	Allowed []State
}

func (e *InvalidStateError) Error() string {
	names := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		names[i] = string(s)
	}
	return fmt.Sprintf("invalid state %q (allowed: %s)", e.Value, strings.Join(names, ", "))
}

// NormalizeState resolves a raw state token against a vocabulary. An absent
// token resolves to the kind's initial state; a present token must match a
// member exactly.
func NormalizeState(raw string, allowed []State, initial State) (State, error) {
	if raw == "" {
		return initial, nil
	}
	for _, s := range allowed {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", &InvalidStateError{Value: raw, Allowed: allowed}
}
