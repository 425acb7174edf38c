package entities

import (
	"context"

	"github.com/metahub-labs/metahub-go/internal/builders"
	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/repo"
)

func (s *Service) CreateLog(ctx context.Context, dto *domain.LogDTO) (*domain.LogDTO, error) {
	if dto.ID == "" {
		dto.ID = s.newID()
	}
	now := s.now()
	dto.Created = now
	dto.Updated = now

	entry, err := builders.BuildLog(s.registry, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Logs.Create(ctx, entry); err != nil {
		return nil, err
	}
	return builders.BuildLogDTO(s.registry, entry)
}

func (s *Service) GetLog(ctx context.Context, project, id string) (*domain.LogDTO, error) {
	entry, err := s.repos.Logs.Get(ctx, project, id)
	if err != nil {
		return nil, err
	}
	return builders.BuildLogDTO(s.registry, entry)
}

func (s *Service) ListLogs(ctx context.Context, filter repo.LogFilter) ([]*domain.LogDTO, error) {
	entries, err := s.repos.Logs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.LogDTO, 0, len(entries))
	for _, entry := range entries {
		dto, err := builders.BuildLogDTO(s.registry, entry)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *Service) UpdateLog(ctx context.Context, project, id string, dto *domain.LogDTO) (*domain.LogDTO, error) {
	existing, err := s.repos.Logs.Get(ctx, project, id)
	if err != nil {
		return nil, err
	}
	dto.Updated = s.now()
	updated, err := builders.UpdateLog(s.registry, existing, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Logs.Update(ctx, updated); err != nil {
		return nil, err
	}
	return builders.BuildLogDTO(s.registry, updated)
}

func (s *Service) DeleteLog(ctx context.Context, project, id string) error {
	return s.repos.Logs.Delete(ctx, project, id)
}
