package seedsync

import (
	"context"
	"fmt"

	"github.com/agentstation/seedsync/pkg/dirset"
	"github.com/agentstation/seedsync/pkg/projects"
	"github.com/agentstation/seedsync/pkg/sync"
)

// Source resolves the directories that should exist under a root.
// *database.Resolver is the production implementation.
type Source interface {
	Expected(ctx context.Context, rootDir string, filter projects.Filter) (*dirset.Set, error)
}

// Syncer reconciles one project root against a Source.
type Syncer interface {
	// Plan reports which expected directories are missing, without side effects.
	Plan(ctx context.Context, opts ...sync.Option) (*sync.Plan, error)

	// Sync creates the missing directories from the seed directory.
	Sync(ctx context.Context, opts ...sync.Option) (*sync.Result, error)

	// OnDirectoryCreated registers a callback for each created directory
	OnDirectoryCreated(DirectoryCreatedHook)

	// OnDirectoryFailed registers a callback for each directory that could not be created
	OnDirectoryFailed(DirectoryFailedHook)
}

// syncer is the internal implementation of the Syncer interface
type syncer struct {
	config *config
	hooks  *hooks
}

// New creates a new Syncer with the given options.
// A source and a root directory are required.
func New(opts ...Option) (Syncer, error) {
	s := &syncer{
		config: defaultConfig(),
		hooks:  newHooks(),
	}

	if err := s.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}
	if err := s.config.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *syncer) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(s.config); err != nil {
			return err
		}
	}
	return nil
}

// OnDirectoryCreated registers a callback for each created directory
func (s *syncer) OnDirectoryCreated(fn DirectoryCreatedHook) {
	s.hooks.OnDirectoryCreated(fn)
}

// OnDirectoryFailed registers a callback for each directory that could not be created
func (s *syncer) OnDirectoryFailed(fn DirectoryFailedHook) {
	s.hooks.OnDirectoryFailed(fn)
}
