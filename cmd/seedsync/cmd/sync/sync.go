package sync

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/seedsync"
	"github.com/agentstation/seedsync/internal/cmd/application"
	"github.com/agentstation/seedsync/internal/cmd/cmdutil"
	"github.com/agentstation/seedsync/internal/cmd/output"
	"github.com/agentstation/seedsync/pkg/logging"
	"github.com/agentstation/seedsync/pkg/sync"
)

// ExecuteSync validates the arguments, runs one sync and prints the report.
// The report is printed even when some directories failed.
func ExecuteSync(cmd *cobra.Command, app application.Application, flags *Flags, args []string) error {
	year, err := cmdutil.ParseYear(args[0])
	if err != nil {
		return err
	}
	rootDir, err := cmdutil.ResolveDir("root_dir", args[1])
	if err != nil {
		return err
	}
	seedDir, err := cmdutil.ResolveDir("seed_dir", args[2])
	if err != nil {
		return err
	}
	if err := cmdutil.EnsureOutside(rootDir, seedDir); err != nil {
		return err
	}

	opts, err := flags.Selection.Options(year)
	if err != nil {
		return err
	}
	opts = append(opts, sync.WithDryRun(flags.DryRun), sync.WithFailFast(flags.FailFast))

	format := output.DetectFormat(app.OutputFormat())
	ctx := logging.WithLogger(cmd.Context(), app.Logger())
	logger := logging.FromContext(ctx)
	logger.Debug().
		Int("year", year).
		Str("root", rootDir).
		Str("seed", seedDir).
		Str("min_status", flags.Selection.MinStatus).
		Bool("dry_run", flags.DryRun).
		Bool("fail_fast", flags.FailFast).
		Msg("Starting sync")

	dbConfig := app.DatabaseConfig()
	flags.Database.Apply(&dbConfig)

	source, err := app.OpenSource(ctx, dbConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := source.Close(); err != nil {
			logger.Warn().Err(err).Msg("Could not close project database")
		}
	}()

	syncer, err := seedsync.New(
		seedsync.WithSource(source),
		seedsync.WithRootDir(rootDir),
		seedsync.WithSeedDir(seedDir),
		seedsync.WithLockDir(app.LockDir()),
	)
	if err != nil {
		return err
	}

	result, syncErr := syncer.Sync(ctx, opts...)
	if result != nil {
		if err := output.FormatResult(cmd.OutOrStdout(), format, result); err != nil {
			return err
		}
	}
	return syncErr
}
