package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teampulse/teampulse/core"
	"github.com/teampulse/teampulse/internal/contract"
)

// collabCmd runs only the collaboration analyzer.
var collabCmd = &cobra.Command{
	Use:   "collab [repo-path]",
	Short: "Show collaboration pairs, knowledge silos and review coverage.",
	Long: `Analyze who works with whom across the commit window, helping you:
- Find the author pairs that share the most files
- Detect knowledge silos where one person owns a file category
- Estimate review coverage from commit trailers
- Gauge how connected and balanced the team is

Examples:
  # Collaboration analysis for the last 90 days
  teampulse collab

  # Stricter silo detection
  teampulse collab --ownership-threshold 0.9 --silo-min-touches 10

  # Top 20 pairs as CSV
  teampulse collab --top-pair-limit 20 --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCollaboration(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run collaboration analysis", err)
		}
	},
}
