package domain

import "github.com/metahub-labs/metahub-go/internal/marshal"

// EntityMetadata is the typed view behind the shared "metadata" codec:
// declared descriptive fields plus the undeclared remainder.
type EntityMetadata struct {
	Name        string
	Version     string
	Description string
	Embedded    bool
	Extra       *marshal.Extension
	Present     marshal.Presence
}
