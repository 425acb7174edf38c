package builders

import (
	"fmt"

	"github.com/metahub-labs/metahub-go/internal/marshal"
)

// Codec tags. Each entity kind reserves its own envelope tag; "metadata" and
// the binary "cbor" tag are shared by every kind.
const (
	TagProject  = "project"
	TagArtifact = "artifact"
	TagDataItem = "dataitem"
	TagFunction = "function"
	TagWorkflow = "workflow"
	TagRun      = "run"
	TagLog      = "log"
	TagMetadata = "metadata"
	TagBinary   = "cbor"
)

// NewRegistry wires every codec the entity builders rely on. It runs once
// during startup; the returned registry is immutable and shared read-only by
// all request handlers.
func NewRegistry() (*marshal.Registry, error) {
	binary, err := marshal.NewBinaryCodec()
	if err != nil {
		return nil, fmt.Errorf("binary codec: %w", err)
	}

	b := marshal.NewBuilder()
	wiring := []struct {
		tag   string
		codec marshal.Codec
	}{
		{TagProject, projectCodec{}},
		{TagArtifact, artifactCodec{}},
		{TagDataItem, dataItemCodec{}},
		{TagFunction, functionCodec{}},
		{TagWorkflow, workflowCodec{}},
		{TagRun, runCodec{}},
		{TagLog, logCodec{}},
		{TagMetadata, metadataCodec{}},
		{TagBinary, binary},
	}
	for _, w := range wiring {
		if err := b.Register(w.tag, w.codec); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}
