// Package app provides the application context and dependency management
// for the seedsync CLI. It centralizes configuration, logging and the
// project database connection, and hands them to commands through the
// application.Application interface.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/seedsync/internal/cmd/application"
	"github.com/agentstation/seedsync/internal/database"
	"github.com/agentstation/seedsync/pkg/errors"
)

// SourceOpener connects to a project source.
type SourceOpener func(ctx context.Context, cfg database.Config) (application.Source, error)

// App represents the seedsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger; an injected one survives flag handling
	logger         *zerolog.Logger
	loggerInjected bool

	openSource SourceOpener
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment, .env files and the default
// config file; options may replace any of it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version:    version,
		commit:     commit,
		date:       date,
		builtBy:    builtBy,
		openSource: openDatabase,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// DatabaseConfig returns a copy of the configured database settings.
func (a *App) DatabaseConfig() database.Config {
	return a.config.Database
}

// LockDir returns the configured run lock directory.
func (a *App) LockDir() string {
	return a.config.LockDir
}

// OpenSource connects to the project database described by cfg.
func (a *App) OpenSource(ctx context.Context, cfg database.Config) (application.Source, error) {
	if a.openSource == nil {
		return nil, errors.NewConfigError("database", "no source opener configured", nil)
	}
	return a.openSource(ctx, cfg)
}

func openDatabase(ctx context.Context, cfg database.Config) (application.Source, error) {
	resolver, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return resolver, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger. Verbosity flags do not replace it.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.loggerInjected = logger != nil
		return nil
	}
}

// WithSourceOpener replaces how the project database is opened (useful for testing).
func WithSourceOpener(open SourceOpener) Option {
	return func(a *App) error {
		a.openSource = open
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
