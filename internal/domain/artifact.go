package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/metahub-labs/metahub-go/internal/marshal"
)

// Artifact is the persisted form of an artifact: queryable identity columns
// plus metadata/spec/extra stored as opaque encoded blobs.
type Artifact struct {
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

func (a Artifact) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("artifact id is required")
	}
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("artifact name is required")
	}
	if strings.TrimSpace(a.Kind) == "" {
		return errors.New("artifact kind is required")
	}
	if strings.TrimSpace(a.Project) == "" {
		return errors.New("project is required")
	}
	return nil
}

// ArtifactDTO is the caller-facing form: blob fields as plain records, state
// as a string token, undeclared keys carried by the extension.
type ArtifactDTO struct {
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
