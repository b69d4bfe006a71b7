package seedsync

import (
	"context"

	"github.com/agentstation/seedsync/internal/fsscan"
	"github.com/agentstation/seedsync/pkg/logging"
	"github.com/agentstation/seedsync/pkg/reconcile"
	"github.com/agentstation/seedsync/pkg/sync"
)

// Plan reports which expected directories are missing under the root.
func (s *syncer) Plan(ctx context.Context, opts ...sync.Option) (*sync.Plan, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	options := sync.NewOptions(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, options)
	defer cancel()

	ctx = logging.WithRoot(logging.WithOperation(ctx, "plan"), s.config.rootDir)
	return s.plan(ctx, options)
}

func (s *syncer) plan(ctx context.Context, options *sync.Options) (*sync.Plan, error) {
	fields := map[string]any{"year": options.Year}
	if options.MinStatus != nil {
		fields["min_status"] = options.MinStatus.String()
	}
	ctx = logging.WithFields(ctx, fields)
	logger := logging.FromContext(ctx)

	// Step 1: What the project table says should exist
	expected, err := s.config.source.Expected(ctx, s.config.rootDir, options.Filter())
	if err != nil {
		return nil, err
	}
	logger.Debug().Strs("expected", expected.Sorted()).Msg("Expected directories")

	// Step 2: What is on disk
	actual, err := fsscan.Directories(s.config.rootDir, func(path string, err error) {
		logger.Debug().Err(err).Str("path", path).Msg("Skipping unreadable entry")
	})
	if err != nil {
		return nil, err
	}
	logger.Debug().Strs("actual", actual.Sorted()).Msg("Actual directories")

	// Step 3: The difference
	missing := reconcile.Diff(expected, actual)
	logger.Debug().Strs("missing", missing.Paths).Msg("Missing directories")

	plan := &sync.Plan{
		RootDir:  s.config.rootDir,
		Year:     options.Year,
		Expected: missing.Expected,
		Actual:   missing.Actual,
		Extra:    missing.Extra,
		Missing:  missing.Paths,
	}
	if options.MinStatus != nil {
		plan.MinStatus = options.MinStatus.String()
	}
	return plan, nil
}

func withTimeout(ctx context.Context, options *sync.Options) (context.Context, context.CancelFunc) {
	if options.Timeout > 0 {
		return context.WithTimeout(ctx, options.Timeout)
	}
	return ctx, func() {}
}
