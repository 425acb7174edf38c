package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/repo"
)

type LogStore struct {
	db DB
}

func NewLogStore(db DB) *LogStore {
	if db == nil {
		return nil
	}
	return &LogStore{db: db}
}

const logColumns = "id, project, run, state, body, extra, created, updated"

func (s *LogStore) Create(ctx context.Context, entry domain.Log) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("log store not initialized")
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO logs (`+logColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		strings.TrimSpace(entry.ID),
		strings.TrimSpace(entry.Project),
		strings.TrimSpace(entry.Run),
		string(entry.State),
		entry.Body,
		entry.Extra,
		normalizeTime(entry.Created),
		normalizeTime(entry.Updated),
	)
	if err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}

func (s *LogStore) Get(ctx context.Context, project, id string) (domain.Log, error) {
	if s == nil || s.db == nil {
		return domain.Log{}, fmt.Errorf("log store not initialized")
	}
	project = strings.TrimSpace(project)
	id = strings.TrimSpace(id)
	if project == "" || id == "" {
		return domain.Log{}, fmt.Errorf("project and log id are required")
	}
	var entry domain.Log
	var state string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT `+logColumns+` FROM logs WHERE project = $1 AND id = $2`,
		project,
		id,
	).Scan(&entry.ID, &entry.Project, &entry.Run, &state,
		&entry.Body, &entry.Extra, &entry.Created, &entry.Updated)
	if err != nil {
		return domain.Log{}, handleNotFound(err)
	}
	entry.State = domain.State(state)
	entry.Created = entry.Created.UTC()
	entry.Updated = entry.Updated.UTC()
	return entry, nil
}

func buildLogListQuery(filter repo.LogFilter) (string, []any, error) {
	if strings.TrimSpace(filter.Project) == "" {
		return "", nil, fmt.Errorf("project is required")
	}
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 3)

	args = append(args, strings.TrimSpace(filter.Project))
	clauses = append(clauses, fmt.Sprintf("project = $%d", len(args)))
	if strings.TrimSpace(filter.Run) != "" {
		args = append(args, strings.TrimSpace(filter.Run))
		clauses = append(clauses, fmt.Sprintf("run = $%d", len(args)))
	}

	query := `SELECT ` + logColumns + ` FROM logs WHERE ` + strings.Join(clauses, " AND ") +
		" ORDER BY created DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return query, args, nil
}

func (s *LogStore) List(ctx context.Context, filter repo.LogFilter) ([]domain.Log, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("log store not initialized")
	}
	query, args, err := buildLogListQuery(filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.Log, 0)
	for rows.Next() {
		var entry domain.Log
		var state string
		if err := rows.Scan(&entry.ID, &entry.Project, &entry.Run, &state,
			&entry.Body, &entry.Extra, &entry.Created, &entry.Updated); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		entry.State = domain.State(state)
		entry.Created = entry.Created.UTC()
		entry.Updated = entry.Updated.UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return entries, nil
}

func (s *LogStore) Update(ctx context.Context, entry domain.Log) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("log store not initialized")
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(
		ctx,
		`UPDATE logs SET state = $1, body = $2, extra = $3, updated = $4
		 WHERE project = $5 AND id = $6`,
		string(entry.State),
		entry.Body,
		entry.Extra,
		normalizeTime(entry.Updated),
		strings.TrimSpace(entry.Project),
		strings.TrimSpace(entry.ID),
	)
	if err != nil {
		return fmt.Errorf("update log: %w", err)
	}
	return requireRow(result)
}

func (s *LogStore) Delete(ctx context.Context, project, id string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("log store not initialized")
	}
	project = strings.TrimSpace(project)
	id = strings.TrimSpace(id)
	if project == "" || id == "" {
		return fmt.Errorf("project and log id are required")
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM logs WHERE project = $1 AND id = $2`, project, id)
	if err != nil {
		return fmt.Errorf("delete log: %w", err)
	}
	return requireRow(result)
}
