package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/metahub-labs/metahub-go/internal/repo"
)

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func normalizeTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

func handleNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repo.ErrNotFound
	}
	return err
}

// entityRow is the shared column layout of the four static entity tables
// (artifacts, dataitems, functions, workflows). The metadata, spec and extra
// columns hold opaque blobs produced by the entity builders.
type entityRow struct {
	ID       string
	Name     string
	Kind     string
	Project  string
	Embedded bool
	State    string
	Metadata []byte
	Spec     []byte
	Extra    []byte
	Created  time.Time
	Updated  time.Time
}

const entityColumns = "id, name, kind, project, embedded, state, metadata, spec, extra, created, updated"

func insertEntity(ctx context.Context, db DB, table string, row entityRow) error {
	created := normalizeTime(row.Created)
	updated := normalizeTime(row.Updated)
	_, err := db.ExecContext(
		ctx,
		`INSERT INTO `+table+` (`+entityColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		strings.TrimSpace(row.ID),
		strings.TrimSpace(row.Name),
		strings.TrimSpace(row.Kind),
		strings.TrimSpace(row.Project),
		row.Embedded,
		row.State,
		row.Metadata,
		row.Spec,
		row.Extra,
		created,
		updated,
	)
	if err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func getEntity(ctx context.Context, db DB, table, project, id string) (entityRow, error) {
	project = strings.TrimSpace(project)
	if project == "" {
		return entityRow{}, fmt.Errorf("project is required")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entityRow{}, fmt.Errorf("id is required")
	}
	var row entityRow
	err := db.QueryRowContext(
		ctx,
		`SELECT `+entityColumns+` FROM `+table+` WHERE project = $1 AND id = $2`,
		project,
		id,
	).Scan(&row.ID, &row.Name, &row.Kind, &row.Project, &row.Embedded, &row.State,
		&row.Metadata, &row.Spec, &row.Extra, &row.Created, &row.Updated)
	if err != nil {
		return entityRow{}, handleNotFound(err)
	}
	row.Created = row.Created.UTC()
	row.Updated = row.Updated.UTC()
	return row, nil
}

func buildEntityListQuery(table string, filter repo.EntityFilter) (string, []any, error) {
	if strings.TrimSpace(filter.Project) == "" {
		return "", nil, fmt.Errorf("project is required")
	}
	clauses := make([]string, 0, 4)
	args := make([]any, 0, 5)

	args = append(args, strings.TrimSpace(filter.Project))
	clauses = append(clauses, fmt.Sprintf("project = $%d", len(args)))
	if strings.TrimSpace(filter.Name) != "" {
		args = append(args, strings.TrimSpace(filter.Name))
		clauses = append(clauses, fmt.Sprintf("name = $%d", len(args)))
	}
	if strings.TrimSpace(filter.Kind) != "" {
		args = append(args, strings.TrimSpace(filter.Kind))
		clauses = append(clauses, fmt.Sprintf("kind = $%d", len(args)))
	}
	if strings.TrimSpace(filter.State) != "" {
		args = append(args, strings.TrimSpace(filter.State))
		clauses = append(clauses, fmt.Sprintf("state = $%d", len(args)))
	}

	query := `SELECT ` + entityColumns + ` FROM ` + table +
		" WHERE " + strings.Join(clauses, " AND ") +
		" ORDER BY created DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return query, args, nil
}

func listEntities(ctx context.Context, db DB, table string, filter repo.EntityFilter) ([]entityRow, error) {
	query, args, err := buildEntityListQuery(table, filter)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	out := make([]entityRow, 0)
	for rows.Next() {
		var row entityRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Kind, &row.Project, &row.Embedded, &row.State,
			&row.Metadata, &row.Spec, &row.Extra, &row.Created, &row.Updated); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		row.Created = row.Created.UTC()
		row.Updated = row.Updated.UTC()
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	return out, nil
}

func updateEntity(ctx context.Context, db DB, table string, row entityRow) error {
	result, err := db.ExecContext(
		ctx,
		`UPDATE `+table+` SET embedded = $1, state = $2, metadata = $3, spec = $4, extra = $5, updated = $6
		 WHERE project = $7 AND id = $8`,
		row.Embedded,
		row.State,
		row.Metadata,
		row.Spec,
		row.Extra,
		normalizeTime(row.Updated),
		strings.TrimSpace(row.Project),
		strings.TrimSpace(row.ID),
	)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return requireRow(result)
}

func deleteEntity(ctx context.Context, db DB, table, project, id string) error {
	project = strings.TrimSpace(project)
	id = strings.TrimSpace(id)
	if project == "" || id == "" {
		return fmt.Errorf("project and id are required")
	}
	result, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE project = $1 AND id = $2`, project, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
