// Package constants provides shared constants used throughout the seedsync codebase.
// This includes timeouts, file permissions, and default identifiers that should be
// consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultConnectTimeout bounds opening and pinging the project database
	DefaultConnectTimeout = 10 * time.Second

	// DefaultQueryTimeout bounds the single project query
	DefaultQueryTimeout = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0o755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0o644
)

// Database defaults mirror the AIMS deployment the tool was written against.
const (
	// DefaultDriver is the database driver used when none is configured
	DefaultDriver = "postgres"

	// DefaultPort is the default Postgres port
	DefaultPort = 5432

	// DefaultSSLMode is passed to Postgres when none is configured
	DefaultSSLMode = "prefer"

	// DefaultProjectsTable holds one row per project phase
	DefaultProjectsTable = "aco.output_project_phases"

	// DefaultPhaseColumn holds the phase number, e.g. "2024-01"
	DefaultPhaseColumn = "projectphase_num"

	// DefaultNameColumn holds the free-form project name
	DefaultNameColumn = "project_name"

	// DefaultYearColumn holds the project year
	DefaultYearColumn = "project_year"

	// DefaultStatusColumn holds the project lifecycle status
	DefaultStatusColumn = "status"
)

// Path constants
const (
	// ConfigFileName is the base name of the optional config file in $HOME or the working directory
	ConfigFileName = ".seedsync"

	// LockFilePrefix prefixes per-root lock files in the lock directory
	LockFilePrefix = "seedsync-"
)
