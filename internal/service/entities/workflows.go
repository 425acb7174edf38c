package entities

import (
	"context"

	"github.com/metahub-labs/metahub-go/internal/builders"
	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/repo"
)

func (s *Service) CreateWorkflow(ctx context.Context, dto *domain.WorkflowDTO) (*domain.WorkflowDTO, error) {
	if dto.ID == "" {
		dto.ID = s.newID()
	}
	now := s.now()
	dto.Created = now
	dto.Updated = now

	workflow, err := builders.BuildWorkflow(s.registry, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Workflows.Create(ctx, workflow); err != nil {
		return nil, err
	}
	s.logger.Info("workflow created", "project", workflow.Project, "id", workflow.ID)
	return builders.BuildWorkflowDTO(s.registry, workflow, true)
}

func (s *Service) GetWorkflow(ctx context.Context, project, id string, embed bool) (*domain.WorkflowDTO, error) {
	workflow, err := s.repos.Workflows.Get(ctx, project, id)
	if err != nil {
		return nil, err
	}
	return builders.BuildWorkflowDTO(s.registry, workflow, embed)
}

func (s *Service) ListWorkflows(ctx context.Context, filter repo.EntityFilter, embed bool) ([]*domain.WorkflowDTO, error) {
	workflows, err := s.repos.Workflows.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.WorkflowDTO, 0, len(workflows))
	for _, workflow := range workflows {
		dto, err := builders.BuildWorkflowDTO(s.registry, workflow, embed)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *Service) UpdateWorkflow(ctx context.Context, project, id string, dto *domain.WorkflowDTO) (*domain.WorkflowDTO, error) {
	existing, err := s.repos.Workflows.Get(ctx, project, id)
	if err != nil {
		return nil, err
	}
	dto.Updated = s.now()
	updated, err := builders.UpdateWorkflow(s.registry, existing, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Workflows.Update(ctx, updated); err != nil {
		return nil, err
	}
	return builders.BuildWorkflowDTO(s.registry, updated, true)
}

func (s *Service) DeleteWorkflow(ctx context.Context, project, id string) error {
	return s.repos.Workflows.Delete(ctx, project, id)
}
