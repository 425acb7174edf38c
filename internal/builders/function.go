package builders

import (
	"fmt"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/marshal"
)

type functionCodec struct{}

func (functionCodec) Decode(src any) (any, error) {
	rec, err := marshal.AsRecord(src)
	if err != nil {
		return nil, err
	}
	f := marshal.NewFields(rec)
	dto := &domain.FunctionDTO{
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

func (functionCodec) Encode(value any) (any, error) {
	dto, ok := value.(*domain.FunctionDTO)
	if !ok {
		return nil, &marshal.EncodeError{Err: fmt.Errorf("expected *domain.FunctionDTO, got %T", value)}
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

// BuildFunction constructs a new function entity from a DTO.
func BuildFunction(reg *marshal.Registry, dto *domain.FunctionDTO) (domain.Function, error) {
	out, err := marshal.Build(func() *domain.Function { return &domain.Function{} }, dto,
		func(dto *domain.FunctionDTO, fn *domain.Function) error {
			fn.ID = dto.ID
			fn.Name = dto.Name
			fn.Kind = dto.Kind
			fn.Project = dto.Project
			fn.Created = dto.Created
			fn.Updated = dto.Updated
			return nil
		},
		applyFunctionState,
		applyFunctionEmbedded,
		applyFunctionBlobs(reg),
	)
	if err != nil {
		return domain.Function{}, buildErr(TagFunction, err)
	}
	return *out, nil
}

// UpdateFunction merges a DTO onto an existing function; identity columns
// stay untouched and omitted fields are reset.
func UpdateFunction(reg *marshal.Registry, existing domain.Function, dto *domain.FunctionDTO) (domain.Function, error) {
	out, err := marshal.Combine(existing, dto,
		applyFunctionState,
		applyFunctionEmbedded,
		applyFunctionBlobs(reg),
		func(dto *domain.FunctionDTO, fn *domain.Function) error {
			fn.Updated = dto.Updated
			return nil
		},
	)
	if err != nil {
		return domain.Function{}, buildErr(TagFunction, err)
	}
	return out, nil
}

// BuildFunctionDTO renders the caller-facing view of a function.
func BuildFunctionDTO(reg *marshal.Registry, fn domain.Function, embeddable bool) (*domain.FunctionDTO, error) {
	out, err := marshal.Build(func() *domain.FunctionDTO { return &domain.FunctionDTO{} }, fn,
		func(fn domain.Function, dto *domain.FunctionDTO) error {
			dto.ID = fn.ID
			dto.Name = fn.Name
			dto.Kind = fn.Kind
			dto.Project = fn.Project
			return nil
		},
		applyFunctionView(reg, embeddable),
	)
	if err != nil {
		return nil, buildErr(TagFunction, err)
	}
	return out, nil
}

func applyFunctionState(dto *domain.FunctionDTO, fn *domain.Function) error {
	state, err := domain.NormalizeState(dto.State, domain.FunctionStates, domain.StateCreated)
	if err != nil {
		return err
	}
	fn.State = state
	return nil
}

func applyFunctionEmbedded(dto *domain.FunctionDTO, fn *domain.Function) error {
	fn.Embedded = dto.Embedded != nil && *dto.Embedded
	return nil
}

func applyFunctionBlobs(reg *marshal.Registry) marshal.Applier[*domain.FunctionDTO, domain.Function] {
	return func(dto *domain.FunctionDTO, fn *domain.Function) error {
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
		fn.Metadata = metadata
		fn.Spec = spec
		fn.Extra = extra
		return nil
	}
}

func applyFunctionView(reg *marshal.Registry, embeddable bool) marshal.Applier[domain.Function, domain.FunctionDTO] {
	return func(fn domain.Function, dto *domain.FunctionDTO) error {
		var viewErr error
		marshal.ApplyWhen(embeddable, func(v domain.Function) bool { return v.Embedded }, dto, fn,
			func(dst *domain.FunctionDTO, v domain.Function) {
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
