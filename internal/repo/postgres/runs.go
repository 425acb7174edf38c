package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/metahub-labs/metahub-go/internal/domain"
	"github.com/metahub-labs/metahub-go/internal/repo"
)

type RunStore struct {
	db DB
}

func NewRunStore(db DB) *RunStore {
	if db == nil {
		return nil
	}
	return &RunStore{db: db}
}

const runColumns = "id, project, kind, task, state, body, extra, created, updated"

func (s *RunStore) Create(ctx context.Context, run domain.Run) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("run store not initialized")
	}
	if err := run.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (`+runColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		strings.TrimSpace(run.ID),
		strings.TrimSpace(run.Project),
		strings.TrimSpace(run.Kind),
		strings.TrimSpace(run.Task),
		string(run.State),
		run.Body,
		run.Extra,
		normalizeTime(run.Created),
		normalizeTime(run.Updated),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *RunStore) Get(ctx context.Context, project, id string) (domain.Run, error) {
	if s == nil || s.db == nil {
		return domain.Run{}, fmt.Errorf("run store not initialized")
	}
	project = strings.TrimSpace(project)
	id = strings.TrimSpace(id)
	if project == "" || id == "" {
		return domain.Run{}, fmt.Errorf("project and run id are required")
	}
	var run domain.Run
	var state string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT `+runColumns+` FROM runs WHERE project = $1 AND id = $2`,
		project,
		id,
	).Scan(&run.ID, &run.Project, &run.Kind, &run.Task, &state,
		&run.Body, &run.Extra, &run.Created, &run.Updated)
	if err != nil {
		return domain.Run{}, handleNotFound(err)
	}
	run.State = domain.State(state)
	run.Created = run.Created.UTC()
	run.Updated = run.Updated.UTC()
	return run, nil
}

func buildRunListQuery(filter repo.RunFilter) (string, []any, error) {
	if strings.TrimSpace(filter.Project) == "" {
		return "", nil, fmt.Errorf("project is required")
	}
	clauses := make([]string, 0, 4)
	args := make([]any, 0, 5)

	args = append(args, strings.TrimSpace(filter.Project))
	clauses = append(clauses, fmt.Sprintf("project = $%d", len(args)))
	if strings.TrimSpace(filter.Kind) != "" {
		args = append(args, strings.TrimSpace(filter.Kind))
		clauses = append(clauses, fmt.Sprintf("kind = $%d", len(args)))
	}
	if strings.TrimSpace(filter.Task) != "" {
		args = append(args, strings.TrimSpace(filter.Task))
		clauses = append(clauses, fmt.Sprintf("task = $%d", len(args)))
	}
	if strings.TrimSpace(filter.State) != "" {
		args = append(args, strings.TrimSpace(filter.State))
		clauses = append(clauses, fmt.Sprintf("state = $%d", len(args)))
	}

	query := `SELECT ` + runColumns + ` FROM runs WHERE ` + strings.Join(clauses, " AND ") +
		" ORDER BY created DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return query, args, nil
}

func (s *RunStore) List(ctx context.Context, filter repo.RunFilter) ([]domain.Run, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("run store not initialized")
	}
	query, args, err := buildRunListQuery(filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.Run, 0)
	for rows.Next() {
		var run domain.Run
		var state string
		if err := rows.Scan(&run.ID, &run.Project, &run.Kind, &run.Task, &state,
			&run.Body, &run.Extra, &run.Created, &run.Updated); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.State = domain.State(state)
		run.Created = run.Created.UTC()
		run.Updated = run.Updated.UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

func (s *RunStore) Update(ctx context.Context, run domain.Run) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("run store not initialized")
	}
	if err := run.Validate(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET state = $1, body = $2, extra = $3, updated = $4
		 WHERE project = $5 AND id = $6`,
		string(run.State),
		run.Body,
		run.Extra,
		normalizeTime(run.Updated),
		strings.TrimSpace(run.Project),
		strings.TrimSpace(run.ID),
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return requireRow(result)
}

func (s *RunStore) Delete(ctx context.Context, project, id string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("run store not initialized")
	}
	project = strings.TrimSpace(project)
	id = strings.TrimSpace(id)
	if project == "" || id == "" {
		return fmt.Errorf("project and run id are required")
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE project = $1 AND id = $2`, project, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return requireRow(result)
}
