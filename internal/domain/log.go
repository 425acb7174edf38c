package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/metahub-labs/metahub-go/internal/marshal"
)

// Log is the persisted form of a run log entry.
type Log struct {
	ID      string
	Project string
	Run     string
	State   State
	Created time.Time
	Updated time.Time
	Body    []byte
	Extra   []byte
}

func (l Log) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return errors.New("log id is required")
	}
	if strings.TrimSpace(l.Project) == "" {
		return errors.New("project is required")
	}
	if strings.TrimSpace(l.Run) == "" {
		return errors.New("run is required")
	}
	return nil
}

type LogDTO struct {
	ID      string
	Project string
	Run     string
	Body    marshal.Record
	State   string
	Created time.Time
	Updated time.Time
	Extra   *marshal.Extension
	Present marshal.Presence
}
