package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/metahub-labs/metahub-go/internal/marshal"
)

// Workflow is the persisted form of a workflow definition.
type Workflow struct {
	ID       string
	Name     string
	Kind     string
	Project  string
	Embedded bool
	State    State
	Created  time.Time
	Updated  time.Time
	Metadata []byte
	Spec     []byte
	Extra    []byte
}

func (w Workflow) Validate() error {
	if strings.TrimSpace(w.ID) == "" {
		return errors.New("workflow id is required")
	}
	if strings.TrimSpace(w.Name) == "" {
		return errors.New("workflow name is required")
	}
	if strings.TrimSpace(w.Kind) == "" {
		return errors.New("workflow kind is required")
	}
	if strings.TrimSpace(w.Project) == "" {
		return errors.New("project is required")
	}
	return nil
}

type WorkflowDTO struct {
	ID       string
	Name     string
	Kind     string
	Project  string
	Metadata marshal.Record
	Spec     marshal.Record
	State    string
	Embedded *bool
	Created  time.Time
	Updated  time.Time
	Extra    *marshal.Extension
	Present  marshal.Presence
}
