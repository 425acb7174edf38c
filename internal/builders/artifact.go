package builders

import (
	"fmt"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/marshal"
)

type artifactCodec struct{}

func (artifactCodec) Decode(src any) (any, error) {
	rec, err := marshal.AsRecord(src)
	if err != nil {
		return nil, err
	}
	f := marshal.NewFields(rec)
	dto := &domain.ArtifactDTO{
		ID:       f.String("id"),
		Name:     f.String("name"),
		Kind:     f.String("kind"),
		Project:  f.String("project"),
		Metadata: f.Record("metadata"),
		Spec:     f.Record("spec"),
		State:    f.String("state"),
		Embedded: f.BoolPtr("embedded"),
		Created:  f.Time("created"),
		Updated:  f.Time("updated"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	dto.Present = f.Present()
	dto.Extra = f.Rest()
	return dto, nil
}

func (artifactCodec) Encode(value any) (any, error) {
	dto, ok := value.(*domain.ArtifactDTO)
	if !ok {
		return nil, &marshal.EncodeError{Err: fmt.Errorf("expected *domain.ArtifactDTO, got %T", value)}
	}
	rec := marshal.Record{}
	p := dto.Present
	putString(rec, p, "id", dto.ID)
	putString(rec, p, "name", dto.Name)
	putString(rec, p, "kind", dto.Kind)
	putString(rec, p, "project", dto.Project)
	putRecord(rec, "metadata", dto.Metadata)
	putRecord(rec, "spec", dto.Spec)
	putString(rec, p, "state", dto.State)
	if dto.Embedded != nil {
		rec["embedded"] = *dto.Embedded
	}
	putTime(rec, p, "created", dto.Created)
	putTime(rec, p, "updated", dto.Updated)
	dto.Extra.MergeInto(rec)
	return rec, nil
}

// BuildArtifact constructs a new artifact entity from a DTO. Metadata, spec
// and extension data are re-encoded into their persisted blob form; an
// absent state resolves to CREATED.
func BuildArtifact(reg *marshal.Registry, dto *domain.ArtifactDTO) (domain.Artifact, error) {
	out, err := marshal.Build(func() *domain.Artifact { return &domain.Artifact{} }, dto,
		applyArtifactIdentity,
		applyArtifactTimestamps,
		applyArtifactState,
		applyArtifactEmbedded,
		applyArtifactBlobs(reg),
	)
	if err != nil {
		return domain.Artifact{}, buildErr(TagArtifact, err)
	}
	return *out, nil
}

// UpdateArtifact merges a DTO onto an existing artifact. Identity columns
// stay untouched; every other applier re-runs unconditionally, so a field
// the DTO omits is reset rather than preserved.
func UpdateArtifact(reg *marshal.Registry, existing domain.Artifact, dto *domain.ArtifactDTO) (domain.Artifact, error) {
	out, err := marshal.Combine(existing, dto,
		applyArtifactState,
		applyArtifactEmbedded,
		applyArtifactBlobs(reg),
		applyArtifactUpdated,
	)
	if err != nil {
		return domain.Artifact{}, buildErr(TagArtifact, err)
	}
	return out, nil
}

// BuildArtifactDTO renders the caller-facing view of an artifact. With
// embeddable false the nested fields follow the artifact's own embedded
// marker.
func BuildArtifactDTO(reg *marshal.Registry, artifact domain.Artifact, embeddable bool) (*domain.ArtifactDTO, error) {
	out, err := marshal.Build(func() *domain.ArtifactDTO { return &domain.ArtifactDTO{} }, artifact,
		func(a domain.Artifact, dto *domain.ArtifactDTO) error {
			dto.ID = a.ID
			dto.Name = a.Name
			dto.Kind = a.Kind
			dto.Project = a.Project
			return nil
		},
		applyArtifactView(reg, embeddable),
	)
	if err != nil {
		return nil, buildErr(TagArtifact, err)
	}
	return out, nil
}

func applyArtifactIdentity(dto *domain.ArtifactDTO, a *domain.Artifact) error {
	a.ID = dto.ID
	a.Name = dto.Name
	a.Kind = dto.Kind
	a.Project = dto.Project
	return nil
}

func applyArtifactTimestamps(dto *domain.ArtifactDTO, a *domain.Artifact) error {
	a.Created = dto.Created
	a.Updated = dto.Updated
	return nil
}

func applyArtifactUpdated(dto *domain.ArtifactDTO, a *domain.Artifact) error {
	a.Updated = dto.Updated
	return nil
}

func applyArtifactState(dto *domain.ArtifactDTO, a *domain.Artifact) error {
	state, err := domain.NormalizeState(dto.State, domain.ArtifactStates, domain.StateCreated)
	if err != nil {
		return err
	}
	a.State = state
	return nil
}

func applyArtifactEmbedded(dto *domain.ArtifactDTO, a *domain.Artifact) error {
	a.Embedded = dto.Embedded != nil && *dto.Embedded
	return nil
}

func applyArtifactBlobs(reg *marshal.Registry) marshal.Applier[*domain.ArtifactDTO, domain.Artifact] {
	return func(dto *domain.ArtifactDTO, a *domain.Artifact) error {
		metadata, err := encodeMetadata(reg, dto.Metadata)
		if err != nil {
			return err
		}
		spec, err := encodeBlob(reg, dto.Spec)
		if err != nil {
			return err
		}
		extra, err := encodeExtension(reg, dto.Extra)
		if err != nil {
			return err
		}
		a.Metadata = metadata
		a.Spec = spec
		a.Extra = extra
		return nil
	}
}

func applyArtifactView(reg *marshal.Registry, embeddable bool) marshal.Applier[domain.Artifact, domain.ArtifactDTO] {
	return func(a domain.Artifact, dto *domain.ArtifactDTO) error {
		var viewErr error
		marshal.ApplyWhen(embeddable, func(v domain.Artifact) bool { return v.Embedded }, dto, a,
			func(dst *domain.ArtifactDTO, v domain.Artifact) {
				metadata, err := decodeBlob(reg, v.Metadata)
				if err != nil {
					viewErr = err
					return
				}
				spec, err := decodeBlob(reg, v.Spec)
				if err != nil {
					viewErr = err
					return
				}
				extra, err := decodeExtension(reg, v.Extra)
				if err != nil {
					viewErr = err
					return
				}
				dst.Metadata = metadata
				dst.Spec = spec
				dst.Extra = extra
				embedded := v.Embedded
				dst.Embedded = &embedded
				dst.State = string(v.State)
				dst.Created = v.Created
				dst.Updated = v.Updated
			})
		return viewErr
	}
}
