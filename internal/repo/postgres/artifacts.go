package postgres

import (
	"context"
	"fmt"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/repo"
)

type ArtifactStore struct {
	db DB
}

func NewArtifactStore(db DB) *ArtifactStore {
	if db == nil {
		return nil
	}
	return &ArtifactStore{db: db}
}

func (s *ArtifactStore) Create(ctx context.Context, artifact domain.Artifact) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("artifact store not initialized")
	}
	if err := artifact.Validate(); err != nil {
		return err
	}
	return insertEntity(ctx, s.db, "artifacts", artifactRow(artifact))
}

func (s *ArtifactStore) Get(ctx context.Context, project, id string) (domain.Artifact, error) {
	if s == nil || s.db == nil {
		return domain.Artifact{}, fmt.Errorf("artifact store not initialized")
	}
	row, err := getEntity(ctx, s.db, "artifacts", project, id)
	if err != nil {
		return domain.Artifact{}, err
	}
	return rowArtifact(row), nil
}

func (s *ArtifactStore) List(ctx context.Context, filter repo.EntityFilter) ([]domain.Artifact, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("artifact store not initialized")
	}
	rows, err := listEntities(ctx, s.db, "artifacts", filter)
	if err != nil {
		return nil, err
	}
	artifacts := make([]domain.Artifact, 0, len(rows))
	for _, row := range rows {
		artifacts = append(artifacts, rowArtifact(row))
	}
	return artifacts, nil
}

func (s *ArtifactStore) Update(ctx context.Context, artifact domain.Artifact) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("artifact store not initialized")
	}
	if err := artifact.Validate(); err != nil {
		return err
	}
	return updateEntity(ctx, s.db, "artifacts", artifactRow(artifact))
}

func (s *ArtifactStore) Delete(ctx context.Context, project, id string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("artifact store not initialized")
	}
	return deleteEntity(ctx, s.db, "artifacts", project, id)
}

func artifactRow(a domain.Artifact) entityRow {
	return entityRow{
		ID:       a.ID,
		Name:     a.Name,
		Kind:     a.Kind,
		Project:  a.Project,
		Embedded: a.Embedded,
		State:    string(a.State),
		Metadata: a.Metadata,
		Spec:     a.Spec,
		Extra:    a.Extra,
		Created:  a.Created,
		Updated:  a.Updated,
	}
}

func rowArtifact(row entityRow) domain.Artifact {
	return domain.Artifact{
		ID:       row.ID,
		Name:     row.Name,
		Kind:     row.Kind,
		Project:  row.Project,
		Embedded: row.Embedded,
		State:    domain.State(row.State),
		Metadata: row.Metadata,
		Spec:     row.Spec,
		Extra:    row.Extra,
		Created:  row.Created,
		Updated:  row.Updated,
	}
}
