package seedsync

import (
	"path/filepath"

	"github.com/agentstation/seedsync/pkg/errors"
)

// Option is a function that configures a Syncer instance
type Option func(*config) error

// config holds what a Syncer needs across runs
type config struct {
	source  Source
	rootDir string
	seedDir string
	lockDir string
	locking bool
}

func defaultConfig() *config {
	return &config{locking: true}
}

func (c *config) validate() error {
	if c.source == nil {
		return errors.NewValidationError("source", nil, "a project source is required")
	}
	if c.rootDir == "" {
		return errors.NewValidationError("root_dir", c.rootDir, "is required")
	}
	return nil
}

// WithSource configures where expected directories come from
func WithSource(src Source) Option {
	return func(c *config) error {
		c.source = src
		return nil
	}
}

// WithRootDir configures the directory project directories live in
func WithRootDir(dir string) Option {
	return func(c *config) error {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return errors.NewValidationError("root_dir", dir, err.Error())
		}
		c.rootDir = abs
		return nil
	}
}

// WithSeedDir configures the directory whose contents are copied into each
// new project directory. Only Sync needs it.
func WithSeedDir(dir string) Option {
	return func(c *config) error {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return errors.NewValidationError("seed_dir", dir, err.Error())
		}
		c.seedDir = abs
		return nil
	}
}

// WithLockDir configures where the run lock file is kept
func WithLockDir(dir string) Option {
	return func(c *config) error {
		c.lockDir = dir
		return nil
	}
}

// WithLocking configures whether Sync takes the per-root run lock
func WithLocking(enabled bool) Option {
	return func(c *config) error {
		c.locking = enabled
		return nil
	}
}
