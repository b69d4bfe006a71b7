// Package application defines what seedsync commands need from the running
// application.
//
// Commands accept the Application interface rather than the concrete App
// type from cmd/seedsync/app, so they can be tested with Mock:
//
//	mock := &application.Mock{
//	    OpenSourceFunc: func(ctx context.Context, cfg database.Config) (application.Source, error) {
//	        return fakeSource, nil
//	    },
//	}
//	cmd := plan.NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/seedsync"
	"github.com/agentstation/seedsync/internal/database"
)

// Source is a project source that holds a connection until closed.
type Source interface {
	seedsync.Source
	Close() error
}

// Application provides the application interface that commands need.
type Application interface {
	// DatabaseConfig returns a copy of the configured database settings.
	// Commands apply their flag overrides to the copy.
	DatabaseConfig() database.Config

	// OpenSource connects to the project database described by cfg.
	// The caller closes the returned source.
	OpenSource(ctx context.Context, cfg database.Config) (Source, error)

	// LockDir returns the directory run locks are created in.
	// Empty means the runlock default.
	LockDir() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, toml).
	// Empty means auto-detect.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
