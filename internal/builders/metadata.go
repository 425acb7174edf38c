package builders

import (
	"fmt"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/marshal"
)

type metadataCodec struct{}

func (metadataCodec) Decode(src any) (any, error) {
	rec, err := marshal.AsRecord(src)
	if err != nil {
		return nil, err
	}
	f := marshal.NewFields(rec)
	meta := &domain.EntityMetadata{
		Name:        f.String("name"),
		Version:     f.String("version"),
		Description: f.String("description"),
		Embedded:    f.Bool("embedded"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	meta.Present = f.Present()
	meta.Extra = f.Rest()
	return meta, nil
}

func (metadataCodec) Encode(value any) (any, error) {
	meta, ok := value.(*domain.EntityMetadata)
	if !ok {
		return nil, &marshal.EncodeError{Err: fmt.Errorf("expected *domain.EntityMetadata, got %T", value)}
	}
	rec := marshal.Record{}
	p := meta.Present
	putString(rec, p, "name", meta.Name)
	putString(rec, p, "version", meta.Version)
	putString(rec, p, "description", meta.Description)
	putBool(rec, p, "embedded", meta.Embedded)
	meta.Extra.MergeInto(rec)
	return rec, nil
}
