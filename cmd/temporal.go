package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teampulse/teampulse/core"
	"github.com/teampulse/teampulse/internal/contract"
)

// temporalCmd runs only the temporal analyzer.
var temporalCmd = &cobra.Command{
	Use:   "temporal [repo-path]",
	Short: "Show commit timing: velocity, heatmap peaks and bus factor.",
	Long: `Analyze when the team commits, helping you:
- Track commit velocity and whether it is rising or falling
- Find the hours and weekdays where activity concentrates
- Spot unusually intense periods (release crunches, incident spikes)
- Measure the bus factor of the window

Examples:
  # Timing analysis for the last 90 days
  teampulse temporal

  # Shorter window with a weekly velocity bucket
  teampulse temporal --start 30d --velocity-window 7

  # Machine-readable output for dashboards
  teampulse temporal --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTemporal(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run temporal analysis", err)
		}
	},
}
