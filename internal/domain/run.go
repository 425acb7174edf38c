package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/metahub-labs/metahub-go/internal/marshal"
)

// Run is the persisted form of an execution run. The task string names the
// function or workflow task the run executes.
type Run struct {
	ID      string
	Project string
	Kind    string
	Task    string
	State   State
	Created time.Time
	Updated time.Time
	Body    []byte
	Extra   []byte
}

func (r Run) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("run id is required")
	}
	if strings.TrimSpace(r.Project) == "" {
		return errors.New("project is required")
	}
	if strings.TrimSpace(r.Kind) == "" {
		return errors.New("run kind is required")
	}
	return nil
}

type RunDTO struct {
	ID      string
	Project string
	Kind    string
	Task    string
	Body    marshal.Record
	State   string
	Created time.Time
	Updated time.Time
	Extra   *marshal.Extension
	Present marshal.Presence
}
