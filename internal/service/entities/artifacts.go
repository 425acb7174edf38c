package entities

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/metahub-labs/metahub-go/internal/builders"
	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/repo"
)

func (s *Service) CreateArtifact(ctx context.Context, dto *domain.ArtifactDTO) (*domain.ArtifactDTO, error) {
	if dto.ID == "" {
		dto.ID = s.newID()
	}
	now := s.now()
	dto.Created = now
	dto.Updated = now

	artifact, err := builders.BuildArtifact(s.registry, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Artifacts.Create(ctx, artifact); err != nil {
		return nil, err
	}
	s.logger.Info("artifact created", "project", artifact.Project, "id", artifact.ID)
	return builders.BuildArtifactDTO(s.registry, artifact, true)
}

func (s *Service) GetArtifact(ctx context.Context, project, id string, embed bool) (*domain.ArtifactDTO, error) {
	artifact, err := s.repos.Artifacts.Get(ctx, project, id)
	if err != nil {
		return nil, err
	}
	return builders.BuildArtifactDTO(s.registry, artifact, embed)
}

func (s *Service) ListArtifacts(ctx context.Context, filter repo.EntityFilter, embed bool) ([]*domain.ArtifactDTO, error) {
	artifacts, err := s.repos.Artifacts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ArtifactDTO, 0, len(artifacts))
	for _, artifact := range artifacts {
		dto, err := builders.BuildArtifactDTO(s.registry, artifact, embed)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *Service) UpdateArtifact(ctx context.Context, project, id string, dto *domain.ArtifactDTO) (*domain.ArtifactDTO, error) {
	existing, err := s.repos.Artifacts.Get(ctx, project, id)
	if err != nil {
		return nil, err
	}
	dto.Updated = s.now()
	updated, err := builders.UpdateArtifact(s.registry, existing, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Artifacts.Update(ctx, updated); err != nil {
		return nil, err
	}
	return builders.BuildArtifactDTO(s.registry, updated, true)
}

func (s *Service) DeleteArtifact(ctx context.Context, project, id string) error {
	return s.repos.Artifacts.Delete(ctx, project, id)
}

// ArtifactUploadURL returns a presigned PUT URL for artifact content. The
// artifact row must exist before content is uploaded against it.
func (s *Service) ArtifactUploadURL(ctx context.Context, project, id, filename string) (string, error) {
	key, err := s.artifactObjectKey(ctx, project, id, filename)
	if err != nil {
		return "", err
	}
	return s.objects.PresignPut(ctx, s.bucket, key, s.uploadTTL)
}

// ArtifactDownloadURL returns a presigned GET URL for artifact content.
func (s *Service) ArtifactDownloadURL(ctx context.Context, project, id, filename string) (string, error) {
	key, err := s.artifactObjectKey(ctx, project, id, filename)
	if err != nil {
		return "", err
	}
	return s.objects.PresignGet(ctx, s.bucket, key, s.downloadTTL)
}

func (s *Service) artifactObjectKey(ctx context.Context, project, id, filename string) (string, error) {
	if s.objects == nil {
		return "", fmt.Errorf("object store not configured")
	}
	filename = strings.TrimSpace(filename)
	if filename == "" || filename != path.Base(filename) {
		return "", fmt.Errorf("filename must be a bare file name")
	}
	// verifies the artifact exists and is scoped to the project
	if _, err := s.repos.Artifacts.Get(ctx, project, id); err != nil {
		return "", err
	}
	return path.Join(project, id, filename), nil
}
