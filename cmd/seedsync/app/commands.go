package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/seedsync/cmd/seedsync/cmd/plan"
	"github.com/agentstation/seedsync/cmd/seedsync/cmd/statuses"
	synccmd "github.com/agentstation/seedsync/cmd/seedsync/cmd/sync"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(synccmd.NewCommand(a))
	rootCmd.AddCommand(plan.NewCommand(a))
	rootCmd.AddCommand(statuses.NewCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("seedsync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
