package entities

import (
	"context"

	"github.com/metahub-labs/metahub-go/internal/builders"
	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/repo"
)

func (s *Service) CreateRun(ctx context.Context, dto *domain.RunDTO) (*domain.RunDTO, error) {
	if dto.ID == "" {
		dto.ID = s.newID()
	}
	now := s.now()
	dto.Created = now
	dto.Updated = now

	run, err := builders.BuildRun(s.registry, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Runs.Create(ctx, run); err != nil {
		return nil, err
	}
	s.logger.Info("run created", "project", run.Project, "id", run.ID, "task", run.Task)
	return builders.BuildRunDTO(s.registry, run)
}

func (s *Service) GetRun(ctx context.Context, project, id string) (*domain.RunDTO, error) {
	run, err := s.repos.Runs.Get(ctx, project, id)
	if err != nil {
		return nil, err
	}
	return builders.BuildRunDTO(s.registry, run)
}

func (s *Service) ListRuns(ctx context.Context, filter repo.RunFilter) ([]*domain.RunDTO, error) {
	runs, err := s.repos.Runs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.RunDTO, 0, len(runs))
	for _, run := range runs {
		dto, err := builders.BuildRunDTO(s.registry, run)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *Service) UpdateRun(ctx context.Context, project, id string, dto *domain.RunDTO) (*domain.RunDTO, error) {
	existing, err := s.repos.Runs.Get(ctx, project, id)
	if err != nil {
		return nil, err
	}
	dto.Updated = s.now()
	updated, err := builders.UpdateRun(s.registry, existing, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Runs.Update(ctx, updated); err != nil {
		return nil, err
	}
	return builders.BuildRunDTO(s.registry, updated)
}

func (s *Service) DeleteRun(ctx context.Context, project, id string) error {
	return s.repos.Runs.Delete(ctx, project, id)
}
