package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teampulse/teampulse/core"
	"github.com/teampulse/teampulse/internal/contract"
)

// qualityCmd runs only the quality risk analyzer.
var qualityCmd = &cobra.Command{
	Use:   "quality [repo-path]",
	Short: "Show churn, large changes, hotspots and the health score.",
	Long: `Analyze quality risk signals in the commit window, helping you:
- Rank files by churn and find the high-churn tail
- Track whether corrective work is trending up or down
- Flag commits that touch an unusually large number of files
- Surface hotspot files with both high churn and many authors
- Summarize the window into a 0-100 health score

Examples:
  # Quality analysis for the last 90 days
  teampulse quality

  # Wider hotspot list with a lower churn cutoff
  teampulse quality --hotspot-limit 25 --churn-percentile 0.8

  # Export hotspot rows to parquet for BI tools
  teampulse quality --output parquet --output-file quality.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteQuality(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run quality analysis", err)
		}
	},
}
