// Package sync provides the sync command implementation.
package sync

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/seedsync/internal/cmd/application"
	"github.com/agentstation/seedsync/internal/cmd/cmdutil"
)

// NewCommand creates the sync command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "sync <year> <root-dir> <seed-dir>",
		GroupID: "core",
		Short:   "Create missing project directories from the seed directory",
		Args:    cobra.ExactArgs(3),
		Long: `Sync reads the projects of <year> from the project database, works out the
directory each one should have under <root-dir>, and creates every directory
that does not exist yet as a recursive copy of <seed-dir>.

Directory names are "<phase number>_<project name>" with every run of
characters other than letters, digits and underscores replaced by "_".

Existing directories are never modified, and directories the database does
not list are left alone. A directory that cannot be created is removed
again and reported; the remaining ones are still created unless --fail-fast
is given. Exit status is 2 when any directory could not be created.`,
		Example: `  seedsync sync 2024 /nas/projects/2024 /nas/templates/project
  seedsync sync 2024 /nas/projects/2024 /nas/templates/project --min-status approved
  seedsync sync 2024 /nas/projects/2024 /nas/templates/project --dry-run -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExecuteSync(cmd, app, flags, args)
		},
	}

	flags = addSyncFlags(cmd)

	return cmd
}

// Flags holds the sync command flags.
type Flags struct {
	Database  *cmdutil.DatabaseFlags
	Selection *cmdutil.SelectionFlags
	DryRun    bool
	FailFast  bool
}

func addSyncFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{
		Database:  cmdutil.AddDatabaseFlags(cmd),
		Selection: cmdutil.AddSelectionFlags(cmd),
	}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"Report the directories that would be created without creating them")
	cmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false,
		"Stop at the first directory that cannot be created")

	return flags
}
