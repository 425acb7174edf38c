package domain

import (
	"errors"
	"testing"
)

func TestNormalizeStateDefaultsWhenAbsent(t *testing.T) {
	state, err := NormalizeState("", ArtifactStates, StateCreated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != StateCreated {
		t.Fatalf("expected CREATED, got %s", state)
	}
}

func TestNormalizeStateMatchesVocabulary(t *testing.T) {
	state, err := NormalizeState("COMPLETED", RunStates, StateCreated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != StateCompleted {
		t.Fatalf("expected COMPLETED, got %s", state)
	}
}

func TestNormalizeStateRejectsUnknownToken(t *testing.T) {
	_, err := NormalizeState("PENDING", ArtifactStates, StateCreated)
	var invalid *InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
	if invalid.Value != "PENDING" {
		t.Fatalf("expected offending token recorded, got %q", invalid.Value)
	}
}

func TestNormalizeStateIsCaseSensitive(t *testing.T) {
	if _, err := NormalizeState("ready", ArtifactStates, StateCreated); err == nil {
		t.Fatalf("expected lowercase token to be rejected")
	}
}

func TestNormalizeStateVocabularyIsPerKind(t *testing.T) {
	if _, err := NormalizeState("RUNNING", ArtifactStates, StateCreated); err == nil {
		t.Fatalf("RUNNING is not an artifact state")
	}
	if _, err := NormalizeState("RUNNING", RunStates, StateCreated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
