// Package database resolves the set of project directories that should exist
// under the managed root by reading the project table.
//
// Postgres is reached through pgx's database/sql adapter. SQLite (pure Go,
// modernc.org/sqlite) is supported for offline snapshots of the table.
package database

import (
	"context"
	"database/sql"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/agentstation/seedsync/pkg/errors"
	"github.com/agentstation/seedsync/pkg/logging"
)

// Open validates cfg, connects and pings the database, and returns a Resolver
// bound to it. Connection failures are returned as *errors.ConnectionError.
func Open(ctx context.Context, cfg Config) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("driver", cfg.Driver).
		Str("target", cfg.Target()).
		Msg("Connecting to project database")

	db, err := connect(cfg)
	if err != nil {
		return nil, errors.NewConnectionError(cfg.Driver, cfg.Target(), err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.NewConnectionError(cfg.Driver, cfg.Target(), err)
	}

	return &Resolver{db: db, cfg: cfg}, nil
}

func connect(cfg Config) (*sql.DB, error) {
	switch cfg.Driver {
	case DriverSQLite:
		// sql.Open would create an empty database for a missing file.
		info, err := os.Stat(cfg.Path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, errors.New("database path is a directory")
		}
		db, err := sql.Open(DriverSQLite, cfg.Path)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	default:
		connConfig, err := pgx.ParseConfig(cfg.DSN())
		if err != nil {
			return nil, err
		}
		if connConfig.ConnectTimeout == 0 {
			connConfig.ConnectTimeout = cfg.ConnectTimeout
		}
		return stdlib.OpenDB(*connConfig), nil
	}
}

// NewResolver wraps an already open database handle. The caller keeps
// ownership of db; Close on the returned Resolver closes it.
func NewResolver(db *sql.DB, cfg Config) (*Resolver, error) {
	if db == nil {
		return nil, errors.NewValidationError("db", nil, "database handle is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Resolver{db: db, cfg: cfg}, nil
}

// Close releases the database handle.
func (r *Resolver) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
