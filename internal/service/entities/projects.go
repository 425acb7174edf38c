package entities

import (
	"context"

	"github.com/metahub-labs/metahub-go/internal/builders"
	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/repo"
)

func (s *Service) CreateProject(ctx context.Context, dto *domain.ProjectDTO) (*domain.ProjectDTO, error) {
	if dto.ID == "" {
		dto.ID = s.newID()
	}
	now := s.now()
	dto.Created = now
	dto.Updated = now

	project, err := builders.BuildProject(s.registry, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Projects.Create(ctx, project); err != nil {
		return nil, err
	}
	s.logger.Info("project created", "id", project.ID, "name", project.Name)
	return builders.BuildProjectDTO(s.registry, project, true)
}

// GetProject renders the project detail view: the full projection plus the
// aggregated child entity lists. Children render through the deferred
// projection, so only the ones marked embedded carry their nested documents.
func (s *Service) GetProject(ctx context.Context, id string) (*domain.ProjectDTO, error) {
	project, err := s.repos.Projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dto, err := builders.BuildProjectDTO(s.registry, project, true)
	if err != nil {
		return nil, err
	}

	childFilter := repo.EntityFilter{Project: project.ID}
	artifacts, err := s.ListArtifacts(ctx, childFilter, false)
	if err != nil {
		return nil, err
	}
	functions, err := s.ListFunctions(ctx, childFilter, false)
	if err != nil {
		return nil, err
	}
	workflows, err := s.ListWorkflows(ctx, childFilter, false)
	if err != nil {
		return nil, err
	}
	dto.Artifacts = artifacts
	dto.Functions = functions
	dto.Workflows = workflows
	return dto, nil
}

func (s *Service) ListProjects(ctx context.Context, filter repo.ProjectFilter) ([]*domain.ProjectDTO, error) {
	projects, err := s.repos.Projects.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ProjectDTO, 0, len(projects))
	for _, project := range projects {
		// listings carry the reference view only
		dto, err := builders.BuildProjectDTO(s.registry, project, false)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *Service) UpdateProject(ctx context.Context, id string, dto *domain.ProjectDTO) (*domain.ProjectDTO, error) {
	existing, err := s.repos.Projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dto.Updated = s.now()
	updated, err := builders.UpdateProject(s.registry, existing, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Projects.Update(ctx, updated); err != nil {
		return nil, err
	}
	return builders.BuildProjectDTO(s.registry, updated, true)
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	return s.repos.Projects.Delete(ctx, id)
}
