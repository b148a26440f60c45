package cmd

import (
	"github.com/huangsam/githours/core"
	"github.com/spf13/cobra"
)

// authorsCmd shows the per-author breakdown.
var authorsCmd = &cobra.Command{
	Use:   "authors [repo-path]",
	Short: "Show estimated hours and commits per author.",
	Long: `Estimate the hours spent by every author of a Git repository.

Authors are identified by their commit email, ranked by hours and then by
commit count. The totals always cover every author, even when --limit hides
some of them from the table.

Examples:
  # Show the top 10 contributors
  githours authors --limit 10

  # Export the full breakdown for a spreadsheet
  githours authors --output csv --output-file authors.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE:    runExecutor(core.ExecuteAuthors),
}

// runExecutor adapts a core executor to a cobra RunE using the shared config.
func runExecutor(fn core.ExecutorFunc) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		return fn(rootCtx, cfg, gitClient)
	}
}
