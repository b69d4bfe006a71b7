package seedsync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agentstation/seedsync/internal/provision"
	"github.com/agentstation/seedsync/internal/runlock"
	"github.com/agentstation/seedsync/pkg/errors"
	"github.com/agentstation/seedsync/pkg/logging"
	"github.com/agentstation/seedsync/pkg/sync"
)

// Sync creates every missing project directory from the seed directory.
//
// The returned result is non-nil whenever resolution succeeded. If some
// directories could not be created, the error is a *errors.ProvisionError.
// If ctx ends before every directory was created, the error also matches
// errors.ErrCanceled.
func (s *syncer) Sync(ctx context.Context, opts ...sync.Option) (*sync.Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()

	// Step 1: Parse and validate options
	options := sync.NewOptions(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if s.config.seedDir == "" {
		return nil, errors.NewValidationError("seed_dir", "", "is required to sync")
	}

	// Step 2: Setup context with timeout and run ID
	ctx, cancel := withTimeout(ctx, options)
	defer cancel()

	runID := logging.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = logging.WithRunID(ctx, runID)
	}
	ctx = logging.WithRoot(logging.WithOperation(ctx, "sync"), s.config.rootDir)
	logger := logging.FromContext(ctx)

	// Step 3: Prepare the provisioner, which checks the seed directory
	provisioner, err := provision.New(s.config.seedDir, provision.Options{
		DryRun:   options.DryRun,
		FailFast: options.FailFast,
	})
	if err != nil {
		return nil, err
	}

	// Step 4: Take the run lock; dry runs change nothing and skip it
	if s.config.locking && !options.DryRun {
		lock, err := runlock.Acquire(s.config.lockDir, s.config.rootDir)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn().Err(err).Str("lock", lock.Path()).Msg("Could not release run lock")
			}
		}()
		logger.Debug().Str("lock", lock.Path()).Msg("Acquired run lock")
	}

	// Step 5: Reconcile
	plan, err := s.plan(ctx, options)
	if err != nil {
		return nil, err
	}

	result := &sync.Result{
		RunID:     runID,
		SeedDir:   provisioner.SeedDir(),
		Plan:      *plan,
		Created:   []string{},
		Failed:    []sync.FailedTarget{},
		Skipped:   []string{},
		DryRun:    options.DryRun,
		StartedAt: started,
	}

	// Step 6: Provision
	if plan.HasMissing() {
		logger.Info().Int("missing", len(plan.Missing)).Bool("dry_run", options.DryRun).Msg("Provisioning missing directories")
	} else {
		logger.Info().Int("expected", plan.Expected).Msg("No missing directories")
	}
	provisioned := provisioner.Provision(ctx, plan.Missing)
	s.hooks.triggerProvisioned(provisioned)

	result.Created = append(result.Created, provisioned.Created...)
	result.Skipped = append(result.Skipped, provisioned.Skipped...)
	for _, f := range provisioned.Failures {
		result.Failed = append(result.Failed, sync.FailedTarget{Path: f.Path, Error: f.Err.Error()})
	}
	result.Duration = time.Since(started)

	logger.Info().
		Int("created", len(result.Created)).
		Int("failed", len(result.Failed)).
		Int("skipped", len(result.Skipped)).
		Dur("duration", result.Duration).
		Msg(result.Summary())

	// Step 7: Report partial failure or interruption. A cancellation that
	// lands mid-copy shows up as a failed target, so it is checked on its own.
	provErr := provisioned.Err()
	if ctx.Err() != nil && (len(result.Skipped) > 0 || len(result.Failed) > 0) {
		canceled := fmt.Errorf("%w: %d directories not attempted: %w", errors.ErrCanceled, len(result.Skipped), context.Cause(ctx))
		return result, errors.Join(provErr, canceled)
	}
	if provErr != nil {
		return result, provErr
	}
	return result, nil
}
