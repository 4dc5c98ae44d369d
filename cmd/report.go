package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teampulse/teampulse/core"
	"github.com/teampulse/teampulse/internal/contract"
)

// reportCmd runs the full composite analysis.
var reportCmd = &cobra.Command{
	Use:   "report [repo-path]",
	Short: "Show the full team report: velocity, collaboration and quality.",
	Long: `Run all three analyzers over a single commit window and render a combined report.

The report covers:
- Commit velocity, trend and peak periods (temporal)
- Collaboration pairs, knowledge silos and review coverage (collaboration)
- File churn, large changes, hotspots and a 0-100 health score (quality)

Each analyzer runs independently; if one fails, the others still report and
the output is marked as partial.

Examples:
  # Full report for the last 90 days (default window)
  teampulse report

  # Report over a fixed window
  teampulse report --start 2026-01-01T00:00:00Z --end 2026-04-01T00:00:00Z

  # Report for the last two weeks of another repository
  teampulse report --start 2w ~/src/payments

  # Export the report as JSON
  teampulse report --output json --output-file report.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run report analysis", err)
		}
	},
}
