package database

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/agentstation/seedsync/pkg/dirset"
	"github.com/agentstation/seedsync/pkg/errors"
	"github.com/agentstation/seedsync/pkg/logging"
	"github.com/agentstation/seedsync/pkg/projects"
)

// Filter selects which project rows are expected on disk.
type Filter = projects.Filter

// Resolver derives expected project directories from the project table.
type Resolver struct {
	db  *sql.DB
	cfg Config
}

// Records runs the project query and returns the matching rows.
// Rows with a NULL phase number or project name are dropped with a warning.
func (r *Resolver) Records(ctx context.Context, filter Filter) ([]projects.Record, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	query, args := r.buildQuery(filter)
	logger := logging.Ctx(ctx)
	logger.Debug().Str("query", query).Interface("args", args).Msg("Querying projects")

	qctx, cancel := context.WithTimeout(ctx, r.cfg.QueryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(qctx, query, args...)
	if err != nil {
		return nil, queryError("query", err)
	}
	defer func() { _ = rows.Close() }()

	var records []projects.Record
	for rows.Next() {
		var phase, name, status sql.NullString
		if err := rows.Scan(&phase, &name, &status); err != nil {
			return nil, queryError("scan", err)
		}
		if !phase.Valid || !name.Valid {
			logger.Warn().
				Str("phase", phase.String).
				Str("name", name.String).
				Msg("Skipping project row with NULL phase number or name")
			continue
		}
		records = append(records, projects.Record{
			PhaseNumber: phase.String,
			ProjectName: name.String,
			Status:      status.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("rows", err)
	}
	return records, nil
}

// Expected returns the absolute paths under rootDir that the project table
// says should exist. Names that are not usable as a single path element are
// skipped with a warning; duplicate names collapse into one path.
func (r *Resolver) Expected(ctx context.Context, rootDir string, filter Filter) (*dirset.Set, error) {
	records, err := r.Records(ctx, filter)
	if err != nil {
		return nil, err
	}

	logger := logging.Ctx(ctx)
	expected := dirset.New()
	for _, rec := range records {
		name := rec.DirName()
		if err := projects.ValidDirName(name); err != nil {
			logger.Warn().
				Err(err).
				Str("phase", rec.PhaseNumber).
				Str("name", rec.ProjectName).
				Msg("Skipping project with unusable directory name")
			continue
		}
		path := filepath.Join(rootDir, name)
		if !expected.Add(path) {
			logger.Debug().Str("path", path).Msg("Duplicate project directory name")
		}
	}

	logger.Debug().
		Int("rows", len(records)).
		Int("expected", expected.Len()).
		Msg("Resolved expected directories")
	return expected, nil
}

func (r *Resolver) buildQuery(filter Filter) (string, []any) {
	placeholder := r.placeholder()

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s, %s, %s FROM %s WHERE %s = %s",
		r.cfg.PhaseColumn, r.cfg.NameColumn, r.cfg.StatusColumn,
		r.cfg.Table, r.cfg.YearColumn, placeholder(1))
	args := []any{filter.Year}

	if filter.MinStatus != nil {
		statuses := filter.Statuses()
		marks := make([]string, len(statuses))
		for i, s := range statuses {
			args = append(args, s.String())
			marks[i] = placeholder(len(args))
		}
		fmt.Fprintf(&b, " AND lower(CAST(%s AS TEXT)) IN (%s)",
			r.cfg.StatusColumn, strings.Join(marks, ", "))
	}
	return b.String(), args
}

func (r *Resolver) placeholder() func(int) string {
	if r.cfg.Driver == DriverSQLite {
		return func(int) string { return "?" }
	}
	return func(n int) string { return fmt.Sprintf("$%d", n) }
}

func queryError(stage string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return errors.NewQueryError(stage, pgErr.Code, err)
	}
	return errors.NewQueryError(stage, "", err)
}
