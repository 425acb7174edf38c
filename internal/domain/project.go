package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/metahub-labs/metahub-go/internal/marshal"
)

// Project is the isolation boundary every other entity belongs to.
type Project struct {
	ID          string
	Name        string
	Description string
	Source      string
	State       State
	Created     time.Time
	Updated     time.Time
	Metadata    []byte
	Extra       []byte
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("project id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("project name is required")
	}
	return nil
}

// ProjectDTO carries the project fields plus, in the full view, the
// project's artifacts, functions and workflows as embedded DTO lists.
type ProjectDTO struct {
	ID          string
	Name        string
	Description string
	Source      string
	Metadata    marshal.Record
	State       string
	Created     time.Time
	Updated     time.Time
	Extra       *marshal.Extension
	Present     marshal.Presence

	Artifacts []*ArtifactDTO
	Functions []*FunctionDTO
	Workflows []*WorkflowDTO
}
