package builders

import (
	"fmt"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/marshal"
)

type runCodec struct{}

func (runCodec) Decode(src any) (any, error) {
	rec, err := marshal.AsRecord(src)
	if err != nil {
		return nil, err
	}
	f := marshal.NewFields(rec)
	dto := &domain.RunDTO{
		ID:      f.String("id"),
		Project: f.String("project"),
		Kind:    f.String("kind"),
		Task:    f.String("task"),
		Body:    f.Record("body"),
		State:   f.String("state"),
		Created: f.Time("created"),
		Updated: f.Time("updated"),
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	dto.Present = f.Present()
	dto.Extra = f.Rest()
	return dto, nil
}

func (runCodec) Encode(value any) (any, error) {
	dto, ok := value.(*domain.RunDTO)
	if !ok {
		return nil, &marshal.EncodeError{Err: fmt.Errorf("expected *domain.RunDTO, got %T", value)}
	}
	rec := marshal.Record{}
	p := dto.Present
	putString(rec, p, "id", dto.ID)
	putString(rec, p, "project", dto.Project)
	putString(rec, p, "kind", dto.Kind)
	putString(rec, p, "task", dto.Task)
	putRecord(rec, "body", dto.Body)
	putString(rec, p, "state", dto.State)
	putTime(rec, p, "created", dto.Created)
	putTime(rec, p, "updated", dto.Updated)
	dto.Extra.MergeInto(rec)
	return rec, nil
}

// BuildRun constructs a new run entity from a DTO. An absent state resolves
// to CREATED against the run vocabulary.
func BuildRun(reg *marshal.Registry, dto *domain.RunDTO) (domain.Run, error) {
	out, err := marshal.Build(func() *domain.Run { return &domain.Run{} }, dto,
		func(dto *domain.RunDTO, r *domain.Run) error {
			r.ID = dto.ID
			r.Project = dto.Project
			r.Kind = dto.Kind
			r.Task = dto.Task
			r.Created = dto.Created
			r.Updated = dto.Updated
			return nil
		},
		applyRunState,
		applyRunBlobs(reg),
	)
	if err != nil {
		return domain.Run{}, buildErr(TagRun, err)
	}
	return *out, nil
}

// UpdateRun merges a DTO onto an existing run; identity columns (id,
// project, kind, task) stay untouched and omitted fields are reset.
func UpdateRun(reg *marshal.Registry, existing domain.Run, dto *domain.RunDTO) (domain.Run, error) {
	out, err := marshal.Combine(existing, dto,
		applyRunState,
		applyRunBlobs(reg),
		func(dto *domain.RunDTO, r *domain.Run) error {
			r.Updated = dto.Updated
			return nil
		},
	)
	if err != nil {
		return domain.Run{}, buildErr(TagRun, err)
	}
	return out, nil
}

// BuildRunDTO renders the caller-facing view of a run. Runs carry no
// embedded marker; body and extension data are always materialized.
func BuildRunDTO(reg *marshal.Registry, run domain.Run) (*domain.RunDTO, error) {
	out, err := marshal.Build(func() *domain.RunDTO { return &domain.RunDTO{} }, run,
		func(r domain.Run, dto *domain.RunDTO) error {
			dto.ID = r.ID
			dto.Project = r.Project
			dto.Kind = r.Kind
			dto.Task = r.Task
			dto.State = string(r.State)
			dto.Created = r.Created
			dto.Updated = r.Updated
			return nil
		},
		func(r domain.Run, dto *domain.RunDTO) error {
			body, err := decodeBlob(reg, r.Body)
			if err != nil {
				return err
			}
			extra, err := decodeExtension(reg, r.Extra)
			if err != nil {
				return err
			}
			dto.Body = body
			dto.Extra = extra
			return nil
		},
	)
	if err != nil {
		return nil, buildErr(TagRun, err)
	}
	return out, nil
}

func applyRunState(dto *domain.RunDTO, r *domain.Run) error {
	state, err := domain.NormalizeState(dto.State, domain.RunStates, domain.StateCreated)
	if err != nil {
		return err
	}
	r.State = state
	return nil
}

func applyRunBlobs(reg *marshal.Registry) marshal.Applier[*domain.RunDTO, domain.Run] {
	return func(dto *domain.RunDTO, r *domain.Run) error {
		body, err := encodeBlob(reg, dto.Body)
		if err != nil {
			return err
		}
		extra, err := encodeExtension(reg, dto.Extra)
		if err != nil {
			return err
		}
		r.Body = body
		r.Extra = extra
		return nil
	}
}
