package builders

import (
	"fmt"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/marshal"
)

type projectCodec struct{}

func (projectCodec) Decode(src any) (any, error) {
	rec, err := marshal.AsRecord(src)
	if err != nil {
		return nil, err
	}
	f := marshal.NewFields(rec)
	dto := &domain.ProjectDTO{
		ID:          f.String("id"),
		Name:        f.String("name"),
		Description: f.String("description"),
		Source:      f.String("source"),
		Metadata:    f.Record("metadata"),
		State:       f.String("state"),
		Created:     f.Time("created"),
		Updated:     f.Time("updated"),
	}
	// response-only aggregates; declared, never read from input
	f.Claim("artifacts", "functions", "workflows")
	if err := f.Err(); err != nil {
		return nil, err
	}
	dto.Present = f.Present()
	dto.Extra = f.Rest()
	return dto, nil
}

func (projectCodec) Encode(value any) (any, error) {
	dto, ok := value.(*domain.ProjectDTO)
	if !ok {
		return nil, &marshal.EncodeError{Err: fmt.Errorf("expected *domain.ProjectDTO, got %T", value)}
	}
	rec := marshal.Record{}
	p := dto.Present
	putString(rec, p, "id", dto.ID)
	putString(rec, p, "name", dto.Name)
	putString(rec, p, "description", dto.Description)
	putString(rec, p, "source", dto.Source)
	putRecord(rec, "metadata", dto.Metadata)
	putString(rec, p, "state", dto.State)
	putTime(rec, p, "created", dto.Created)
	putTime(rec, p, "updated", dto.Updated)

	if len(dto.Artifacts) > 0 {
		list := make([]any, 0, len(dto.Artifacts))
		for _, a := range dto.Artifacts {
			child, err := artifactCodec{}.Encode(a)
			if err != nil {
				return nil, err
			}
			list = append(list, child)
		}
		rec["artifacts"] = list
	}
	if len(dto.Functions) > 0 {
		list := make([]any, 0, len(dto.Functions))
		for _, fn := range dto.Functions {
			child, err := functionCodec{}.Encode(fn)
			if err != nil {
				return nil, err
			}
			list = append(list, child)
		}
		rec["functions"] = list
	}
	if len(dto.Workflows) > 0 {
		list := make([]any, 0, len(dto.Workflows))
		for _, w := range dto.Workflows {
			child, err := workflowCodec{}.Encode(w)
			if err != nil {
				return nil, err
			}
			list = append(list, child)
		}
		rec["workflows"] = list
	}

	dto.Extra.MergeInto(rec)
	return rec, nil
}

// BuildProject constructs a new project entity from a DTO.
func BuildProject(reg *marshal.Registry, dto *domain.ProjectDTO) (domain.Project, error) {
	out, err := marshal.Build(func() *domain.Project { return &domain.Project{} }, dto,
		func(dto *domain.ProjectDTO, p *domain.Project) error {
			p.ID = dto.ID
			p.Name = dto.Name
			p.Created = dto.Created
			p.Updated = dto.Updated
			return nil
		},
		applyProjectDetails,
		applyProjectState,
		applyProjectBlobs(reg),
	)
	if err != nil {
		return domain.Project{}, buildErr(TagProject, err)
	}
	return *out, nil
}

// UpdateProject merges a DTO onto an existing project; id and name stay
// untouched and omitted fields are reset.
func UpdateProject(reg *marshal.Registry, existing domain.Project, dto *domain.ProjectDTO) (domain.Project, error) {
	out, err := marshal.Combine(existing, dto,
		applyProjectDetails,
		applyProjectState,
		applyProjectBlobs(reg),
		func(dto *domain.ProjectDTO, p *domain.Project) error {
			p.Updated = dto.Updated
			return nil
		},
	)
	if err != nil {
		return domain.Project{}, buildErr(TagProject, err)
	}
	return out, nil
}

// BuildProjectDTO renders a project view. With embeddable false only the
// identity fields are populated (the reference view used by listings); the
// full view carries description, metadata, extension, state and timestamps.
// Child entity lists are attached by the caller.
func BuildProjectDTO(reg *marshal.Registry, project domain.Project, embeddable bool) (*domain.ProjectDTO, error) {
	out, err := marshal.Build(func() *domain.ProjectDTO { return &domain.ProjectDTO{} }, project,
		func(p domain.Project, dto *domain.ProjectDTO) error {
			dto.ID = p.ID
			dto.Name = p.Name
			return nil
		},
		applyProjectView(reg, embeddable),
	)
	if err != nil {
		return nil, buildErr(TagProject, err)
	}
	return out, nil
}

func applyProjectDetails(dto *domain.ProjectDTO, p *domain.Project) error {
	p.Description = dto.Description
	p.Source = dto.Source
	return nil
}

func applyProjectState(dto *domain.ProjectDTO, p *domain.Project) error {
	state, err := domain.NormalizeState(dto.State, domain.ProjectStates, domain.StateCreated)
	if err != nil {
		return err
	}
	p.State = state
	return nil
}

func applyProjectBlobs(reg *marshal.Registry) marshal.Applier[*domain.ProjectDTO, domain.Project] {
	return func(dto *domain.ProjectDTO, p *domain.Project) error {
		metadata, err := encodeMetadata(reg, dto.Metadata)
		if err != nil {
			return err
		}
		extra, err := encodeExtension(reg, dto.Extra)
		if err != nil {
			return err
		}
		p.Metadata = metadata
		p.Extra = extra
		return nil
	}
}

func applyProjectView(reg *marshal.Registry, embeddable bool) marshal.Applier[domain.Project, domain.ProjectDTO] {
	return func(p domain.Project, dto *domain.ProjectDTO) error {
		var viewErr error
		marshal.ApplyWhen(embeddable, nil, dto, p,
			func(dst *domain.ProjectDTO, v domain.Project) {
				metadata, err := decodeBlob(reg, v.Metadata)
				if err != nil {
					viewErr = err
					return
				}
				extra, err := decodeExtension(reg, v.Extra)
				if err != nil {
					viewErr = err
					return
				}
				dst.Description = v.Description
				dst.Source = v.Source
				dst.Metadata = metadata
				dst.Extra = extra
				dst.State = string(v.State)
				dst.Created = v.Created
				dst.Updated = v.Updated
			})
		return viewErr
	}
}
