package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/metahub-labs/metahub-go/internal/marshal"
)

// Function is the persisted form of a function definition.
type Function struct {
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

func (f Function) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return errors.New("function id is required")
	}
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("function name is required")
	}
	if strings.TrimSpace(f.Kind) == "" {
		return errors.New("function kind is required")
	}
	if strings.TrimSpace(f.Project) == "" {
		return errors.New("project is required")
	}
	return nil
}

type FunctionDTO struct {
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
