package entities

import (
	"context"

	"github.com/metahub-labs/metahub-go/internal/builders"
	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/repo"
)

func (s *Service) CreateFunction(ctx context.Context, dto *domain.FunctionDTO) (*domain.FunctionDTO, error) {
	if dto.ID == "" {
		dto.ID = s.newID()
	}
	now := s.now()
	dto.Created = now
	dto.Updated = now

	fn, err := builders.BuildFunction(s.registry, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Functions.Create(ctx, fn); err != nil {
		return nil, err
	}
	s.logger.Info("function created", "project", fn.Project, "id", fn.ID)
	return builders.BuildFunctionDTO(s.registry, fn, true)
}

func (s *Service) GetFunction(ctx context.Context, project, id string, embed bool) (*domain.FunctionDTO, error) {
	fn, err := s.repos.Functions.Get(ctx, project, id)
	if err != nil {
		return nil, err
	}
	return builders.BuildFunctionDTO(s.registry, fn, embed)
}

func (s *Service) ListFunctions(ctx context.Context, filter repo.EntityFilter, embed bool) ([]*domain.FunctionDTO, error) {
	fns, err := s.repos.Functions.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.FunctionDTO, 0, len(fns))
	for _, fn := range fns {
		dto, err := builders.BuildFunctionDTO(s.registry, fn, embed)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *Service) UpdateFunction(ctx context.Context, project, id string, dto *domain.FunctionDTO) (*domain.FunctionDTO, error) {
	existing, err := s.repos.Functions.Get(ctx, project, id)
	if err != nil {
		return nil, err
	}
	dto.Updated = s.now()
	updated, err := builders.UpdateFunction(s.registry, existing, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Functions.Update(ctx, updated); err != nil {
		return nil, err
	}
	return builders.BuildFunctionDTO(s.registry, updated, true)
}

func (s *Service) DeleteFunction(ctx context.Context, project, id string) error {
	return s.repos.Functions.Delete(ctx, project, id)
}
