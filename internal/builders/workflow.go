package builders

import (
	"fmt"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/marshal"
)

type workflowCodec struct{}

func (workflowCodec) Decode(src any) (any, error) {
	rec, err := marshal.AsRecord(src)
	if err != nil {
		return nil, err
	}
	f := marshal.NewFields(rec)
	dto := &domain.WorkflowDTO{
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

func (workflowCodec) Encode(value any) (any, error) {
	dto, ok := value.(*domain.WorkflowDTO)
	if !ok {
		return nil, &marshal.EncodeError{Err: fmt.Errorf("expected *domain.WorkflowDTO, got %T", value)}
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

// BuildWorkflow constructs a new workflow entity from a DTO.
func BuildWorkflow(reg *marshal.Registry, dto *domain.WorkflowDTO) (domain.Workflow, error) {
	out, err := marshal.Build(func() *domain.Workflow { return &domain.Workflow{} }, dto,
		func(dto *domain.WorkflowDTO, w *domain.Workflow) error {
			w.ID = dto.ID
			w.Name = dto.Name
			w.Kind = dto.Kind
			w.Project = dto.Project
			w.Created = dto.Created
			w.Updated = dto.Updated
			return nil
		},
		applyWorkflowState,
		applyWorkflowEmbedded,
		applyWorkflowBlobs(reg),
	)
	if err != nil {
		return domain.Workflow{}, buildErr(TagWorkflow, err)
	}
	return *out, nil
}

// UpdateWorkflow merges a DTO onto an existing workflow; identity columns
// stay untouched and omitted fields are reset.
func UpdateWorkflow(reg *marshal.Registry, existing domain.Workflow, dto *domain.WorkflowDTO) (domain.Workflow, error) {
	out, err := marshal.Combine(existing, dto,
		applyWorkflowState,
		applyWorkflowEmbedded,
		applyWorkflowBlobs(reg),
		func(dto *domain.WorkflowDTO, w *domain.Workflow) error {
			w.Updated = dto.Updated
			return nil
		},
	)
	if err != nil {
		return domain.Workflow{}, buildErr(TagWorkflow, err)
	}
	return out, nil
}

// BuildWorkflowDTO renders the caller-facing view of a workflow.
func BuildWorkflowDTO(reg *marshal.Registry, w domain.Workflow, embeddable bool) (*domain.WorkflowDTO, error) {
	out, err := marshal.Build(func() *domain.WorkflowDTO { return &domain.WorkflowDTO{} }, w,
		func(w domain.Workflow, dto *domain.WorkflowDTO) error {
			dto.ID = w.ID
			dto.Name = w.Name
			dto.Kind = w.Kind
			dto.Project = w.Project
			return nil
		},
		applyWorkflowView(reg, embeddable),
	)
	if err != nil {
		return nil, buildErr(TagWorkflow, err)
	}
	return out, nil
}

func applyWorkflowState(dto *domain.WorkflowDTO, w *domain.Workflow) error {
	state, err := domain.NormalizeState(dto.State, domain.WorkflowStates, domain.StateCreated)
	if err != nil {
		return err
	}
	w.State = state
	return nil
}

func applyWorkflowEmbedded(dto *domain.WorkflowDTO, w *domain.Workflow) error {
	w.Embedded = dto.Embedded != nil && *dto.Embedded
	return nil
}

func applyWorkflowBlobs(reg *marshal.Registry) marshal.Applier[*domain.WorkflowDTO, domain.Workflow] {
	return func(dto *domain.WorkflowDTO, w *domain.Workflow) error {
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
		w.Metadata = metadata
		w.Spec = spec
		w.Extra = extra
		return nil
	}
}

func applyWorkflowView(reg *marshal.Registry, embeddable bool) marshal.Applier[domain.Workflow, domain.WorkflowDTO] {
	return func(w domain.Workflow, dto *domain.WorkflowDTO) error {
		var viewErr error
		marshal.ApplyWhen(embeddable, func(v domain.Workflow) bool { return v.Embedded }, dto, w,
			func(dst *domain.WorkflowDTO, v domain.Workflow) {
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
