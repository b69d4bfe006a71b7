// Package statuses provides the statuses command implementation.
package statuses

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/seedsync/internal/cmd/application"
	"github.com/agentstation/seedsync/internal/cmd/output"
	"github.com/agentstation/seedsync/pkg/projects"
)

// NewCommand creates the statuses command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "statuses",
		Short: "List project statuses in lifecycle order",
		Long: `Statuses lists the project lifecycle stages in order. --min-status keeps
projects at the given stage or any later one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := output.DetectFormat(app.OutputFormat())
			return output.FormatStatuses(cmd.OutOrStdout(), format, projects.Statuses())
		},
	}
}
