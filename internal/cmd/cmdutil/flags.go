// Package cmdutil provides shared flags and argument helpers for seedsync commands.
package cmdutil

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/seedsync/internal/database"
	"github.com/agentstation/seedsync/pkg/projects"
	"github.com/agentstation/seedsync/pkg/sync"
)

// DatabaseFlags holds the per-command database overrides. Only flags the
// user actually set replace configured values; the password is never a flag.
type DatabaseFlags struct {
	Driver string
	URL    string
	Host   string
	Port   int
	Name   string
	User   string
	Path   string

	cmd *cobra.Command
}

// AddDatabaseFlags adds database connection flags to a command.
func AddDatabaseFlags(cmd *cobra.Command) *DatabaseFlags {
	flags := &DatabaseFlags{cmd: cmd}

	cmd.Flags().StringVar(&flags.Driver, "db-driver", "",
		"Database driver: postgres or sqlite")
	cmd.Flags().StringVar(&flags.URL, "db-url", "",
		"Full Postgres connection URL (overrides host, port, name and user)")
	cmd.Flags().StringVar(&flags.Host, "db-host", "",
		"Database host")
	cmd.Flags().IntVar(&flags.Port, "db-port", 0,
		"Database port")
	cmd.Flags().StringVar(&flags.Name, "db-name", "",
		"Database name")
	cmd.Flags().StringVar(&flags.User, "db-user", "",
		"Database user")
	cmd.Flags().StringVar(&flags.Path, "db-path", "",
		"SQLite database file (with --db-driver sqlite)")

	return flags
}

// Apply copies the flags that were set on the command line onto cfg.
func (f *DatabaseFlags) Apply(cfg *database.Config) {
	changed := func(name string) bool {
		return f.cmd != nil && f.cmd.Flags().Changed(name)
	}
	if changed("db-driver") {
		cfg.Driver = f.Driver
	}
	if changed("db-url") {
		cfg.URL = f.URL
	}
	if changed("db-host") {
		cfg.Host = f.Host
	}
	if changed("db-port") {
		cfg.Port = f.Port
	}
	if changed("db-name") {
		cfg.Name = f.Name
	}
	if changed("db-user") {
		cfg.User = f.User
	}
	if changed("db-path") {
		cfg.Path = f.Path
	}
}

// SelectionFlags holds the project selection flags shared by plan and sync.
type SelectionFlags struct {
	MinStatus string
	Timeout   time.Duration
}

// AddSelectionFlags adds project selection flags to a command.
func AddSelectionFlags(cmd *cobra.Command) *SelectionFlags {
	flags := &SelectionFlags{}

	cmd.Flags().StringVar(&flags.MinStatus, "min-status", "",
		"Only include projects at or beyond this status (see 'seedsync statuses')")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0,
		"Abort the whole run after this long (0 means no limit)")

	return flags
}

// Options converts the flags into sync options for year.
func (f *SelectionFlags) Options(year int) ([]sync.Option, error) {
	opts := []sync.Option{sync.WithYear(year)}
	if f.MinStatus != "" {
		status, err := projects.ParseStatus(f.MinStatus)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sync.WithMinStatus(status))
	}
	if f.Timeout > 0 {
		opts = append(opts, sync.WithTimeout(f.Timeout))
	}
	return opts, nil
}
