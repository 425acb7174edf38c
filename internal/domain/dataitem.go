package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/metahub-labs/metahub-go/internal/marshal"
)

// DataItem is the persisted form of a data item.
type DataItem struct {
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

func (d DataItem) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("dataitem id is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("dataitem name is required")
	}
	if strings.TrimSpace(d.Kind) == "" {
		return errors.New("dataitem kind is required")
	}
	if strings.TrimSpace(d.Project) == "" {
		return errors.New("project is required")
	}
	return nil
}

type DataItemDTO struct {
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
