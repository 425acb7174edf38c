package entities

import (
	"context"

	"github.com/metahub-labs/metahub-go/internal/builders"
	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/repo"
)

func (s *Service) CreateDataItem(ctx context.Context, dto *domain.DataItemDTO) (*domain.DataItemDTO, error) {
	if dto.ID == "" {
		dto.ID = s.newID()
	}
	now := s.now()
	dto.Created = now
	dto.Updated = now

	item, err := builders.BuildDataItem(s.registry, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repos.DataItems.Create(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("dataitem created", "project", item.Project, "id", item.ID)
	return builders.BuildDataItemDTO(s.registry, item, true)
}

func (s *Service) GetDataItem(ctx context.Context, project, id string, embed bool) (*domain.DataItemDTO, error) {
	item, err := s.repos.DataItems.Get(ctx, project, id)
	if err != nil {
		return nil, err
	}
	return builders.BuildDataItemDTO(s.registry, item, embed)
}

func (s *Service) ListDataItems(ctx context.Context, filter repo.EntityFilter, embed bool) ([]*domain.DataItemDTO, error) {
	items, err := s.repos.DataItems.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.DataItemDTO, 0, len(items))
	for _, item := range items {
		dto, err := builders.BuildDataItemDTO(s.registry, item, embed)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *Service) UpdateDataItem(ctx context.Context, project, id string, dto *domain.DataItemDTO) (*domain.DataItemDTO, error) {
	existing, err := s.repos.DataItems.Get(ctx, project, id)
	if err != nil {
		return nil, err
	}
	dto.Updated = s.now()
	updated, err := builders.UpdateDataItem(s.registry, existing, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repos.DataItems.Update(ctx, updated); err != nil {
		return nil, err
	}
	return builders.BuildDataItemDTO(s.registry, updated, true)
}

func (s *Service) DeleteDataItem(ctx context.Context, project, id string) error {
	return s.repos.DataItems.Delete(ctx, project, id)
}
