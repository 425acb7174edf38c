package postgres

import (
	"context"
	"fmt"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/repo"
)

type DataItemStore struct {
	db DB
}

func NewDataItemStore(db DB) *DataItemStore {
	if db == nil {
		return nil
	}
	return &DataItemStore{db: db}
}

func (s *DataItemStore) Create(ctx context.Context, item domain.DataItem) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("dataitem store not initialized")
	}
	if err := item.Validate(); err != nil {
		return err
	}
	return insertEntity(ctx, s.db, "dataitems", dataItemRow(item))
}

func (s *DataItemStore) Get(ctx context.Context, project, id string) (domain.DataItem, error) {
	if s == nil || s.db == nil {
		return domain.DataItem{}, fmt.Errorf("dataitem store not initialized")
	}
	row, err := getEntity(ctx, s.db, "dataitems", project, id)
	if err != nil {
		return domain.DataItem{}, err
	}
	return rowDataItem(row), nil
}

func (s *DataItemStore) List(ctx context.Context, filter repo.EntityFilter) ([]domain.DataItem, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("dataitem store not initialized")
	}
	rows, err := listEntities(ctx, s.db, "dataitems", filter)
	if err != nil {
		return nil, err
	}
	items := make([]domain.DataItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, rowDataItem(row))
	}
	return items, nil
}

func (s *DataItemStore) Update(ctx context.Context, item domain.DataItem) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("dataitem store not initialized")
	}
	if err := item.Validate(); err != nil {
		return err
	}
	return updateEntity(ctx, s.db, "dataitems", dataItemRow(item))
}

func (s *DataItemStore) Delete(ctx context.Context, project, id string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("dataitem store not initialized")
	}
	return deleteEntity(ctx, s.db, "dataitems", project, id)
}

func dataItemRow(d domain.DataItem) entityRow {
	return entityRow{
		ID:       d.ID,
		Name:     d.Name,
		Kind:     d.Kind,
		Project:  d.Project,
		Embedded: d.Embedded,
		State:    string(d.State),
		Metadata: d.Metadata,
		Spec:     d.Spec,
		Extra:    d.Extra,
		Created:  d.Created,
		Updated:  d.Updated,
	}
}

func rowDataItem(row entityRow) domain.DataItem {
	return domain.DataItem{
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
