package postgres

import (
	"context"
	"fmt"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/repo"
)

type FunctionStore struct {
	db DB
}

func NewFunctionStore(db DB) *FunctionStore {
	if db == nil {
		return nil
	}
	return &FunctionStore{db: db}
}

func (s *FunctionStore) Create(ctx context.Context, fn domain.Function) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("function store not initialized")
	}
	if err := fn.Validate(); err != nil {
		return err
	}
	return insertEntity(ctx, s.db, "functions", functionRow(fn))
}

func (s *FunctionStore) Get(ctx context.Context, project, id string) (domain.Function, error) {
	if s == nil || s.db == nil {
		return domain.Function{}, fmt.Errorf("function store not initialized")
	}
	row, err := getEntity(ctx, s.db, "functions", project, id)
	if err != nil {
		return domain.Function{}, err
	}
	return rowFunction(row), nil
}

func (s *FunctionStore) List(ctx context.Context, filter repo.EntityFilter) ([]domain.Function, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("function store not initialized")
	}
	rows, err := listEntities(ctx, s.db, "functions", filter)
	if err != nil {
		return nil, err
	}
	fns := make([]domain.Function, 0, len(rows))
	for _, row := range rows {
		fns = append(fns, rowFunction(row))
	}
	return fns, nil
}

func (s *FunctionStore) Update(ctx context.Context, fn domain.Function) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("function store not initialized")
	}
	if err := fn.Validate(); err != nil {
		return err
	}
	return updateEntity(ctx, s.db, "functions", functionRow(fn))
}

func (s *FunctionStore) Delete(ctx context.Context, project, id string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("function store not initialized")
	}
	return deleteEntity(ctx, s.db, "functions", project, id)
}

func functionRow(f domain.Function) entityRow {
	return entityRow{
		ID:       f.ID,
		Name:     f.Name,
		Kind:     f.Kind,
		Project:  f.Project,
		Embedded: f.Embedded,
		State:    string(f.State),
		Metadata: f.Metadata,
		Spec:     f.Spec,
		Extra:    f.Extra,
		Created:  f.Created,
		Updated:  f.Updated,
	}
}

func rowFunction(row entityRow) domain.Function {
	return domain.Function{
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
