// Package plan provides the plan command implementation.
package plan

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/seedsync"
	"github.com/agentstation/seedsync/internal/cmd/application"
	"github.com/agentstation/seedsync/internal/cmd/cmdutil"
	"github.com/agentstation/seedsync/internal/cmd/output"
	"github.com/agentstation/seedsync/pkg/logging"
)

// NewCommand creates the plan command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "plan <year> <root-dir>",
		GroupID: "core",
		Short:   "Show which project directories are missing",
		Args:    cobra.ExactArgs(2),
		Long: `Plan compares the directories the project database expects under <root-dir>
with the ones that exist, and lists the missing ones. Nothing is written.`,
		Example: `  seedsync plan 2024 /nas/projects/2024
  seedsync plan 2024 /nas/projects/2024 --min-status flown -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := cmdutil.ParseYear(args[0])
			if err != nil {
				return err
			}
			rootDir, err := cmdutil.ResolveDir("root_dir", args[1])
			if err != nil {
				return err
			}
			opts, err := flags.Selection.Options(year)
			if err != nil {
				return err
			}

			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			dbConfig := app.DatabaseConfig()
			flags.Database.Apply(&dbConfig)

			source, err := app.OpenSource(ctx, dbConfig)
			if err != nil {
				return err
			}
			defer source.Close() //nolint:errcheck // read-only connection

			syncer, err := seedsync.New(
				seedsync.WithSource(source),
				seedsync.WithRootDir(rootDir),
			)
			if err != nil {
				return err
			}

			plan, err := syncer.Plan(ctx, opts...)
			if err != nil {
				return err
			}
			return output.FormatPlan(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), plan)
		},
	}

	flags = &Flags{
		Database:  cmdutil.AddDatabaseFlags(cmd),
		Selection: cmdutil.AddSelectionFlags(cmd),
	}

	return cmd
}

// Flags holds the plan command flags.
type Flags struct {
	Database  *cmdutil.DatabaseFlags
	Selection *cmdutil.SelectionFlags
}
