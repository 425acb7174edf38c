package postgres

import (
	"context"
	"fmt"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/repo"
)

type WorkflowStore struct {
	db DB
}

func NewWorkflowStore(db DB) *WorkflowStore {
	if db == nil {
		return nil
	}
	return &WorkflowStore{db: db}
}

func (s *WorkflowStore) Create(ctx context.Context, workflow domain.Workflow) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("workflow store not initialized")
	}
	if err := workflow.Validate(); err != nil {
		return err
	}
	return insertEntity(ctx, s.db, "workflows", workflowRow(workflow))
}

func (s *WorkflowStore) Get(ctx context.Context, project, id string) (domain.Workflow, error) {
	if s == nil || s.db == nil {
		return domain.Workflow{}, fmt.Errorf("workflow store not initialized")
	}
	row, err := getEntity(ctx, s.db, "workflows", project, id)
	if err != nil {
		return domain.Workflow{}, err
	}
	return rowWorkflow(row), nil
}

func (s *WorkflowStore) List(ctx context.Context, filter repo.EntityFilter) ([]domain.Workflow, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("workflow store not initialized")
	}
	rows, err := listEntities(ctx, s.db, "workflows", filter)
	if err != nil {
		return nil, err
	}
	workflows := make([]domain.Workflow, 0, len(rows))
	for _, row := range rows {
		workflows = append(workflows, rowWorkflow(row))
	}
	return workflows, nil
}

func (s *WorkflowStore) Update(ctx context.Context, workflow domain.Workflow) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("workflow store not initialized")
	}
	if err := workflow.Validate(); err != nil {
		return err
	}
	return updateEntity(ctx, s.db, "workflows", workflowRow(workflow))
}

func (s *WorkflowStore) Delete(ctx context.Context, project, id string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("workflow store not initialized")
	}
	return deleteEntity(ctx, s.db, "workflows", project, id)
}

func workflowRow(w domain.Workflow) entityRow {
	return entityRow{
		ID:       w.ID,
		Name:     w.Name,
		Kind:     w.Kind,
		Project:  w.Project,
		Embedded: w.Embedded,
		State:    string(w.State),
		Metadata: w.Metadata,
		Spec:     w.Spec,
		Extra:    w.Extra,
		Created:  w.Created,
		Updated:  w.Updated,
	}
}

func rowWorkflow(row entityRow) domain.Workflow {
	return domain.Workflow{
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
