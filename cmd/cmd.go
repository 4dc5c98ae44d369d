// Package cmd defines the command-line interface for teampulse.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teampulse/teampulse/internal/contract"
	"github.com/teampulse/teampulse/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(temporalCmd)
	rootCmd.AddCommand(collabCmd)
	rootCmd.AddCommand(qualityCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("start", "", "Window start in ISO8601, 'N [units] ago' or a shorthand like '90d'")
	rootCmd.PersistentFlags().String("end", "", "Window end in ISO8601 or time ago (defaults to now)")
	rootCmd.PersistentFlags().Int("max-commits", contract.DefaultMaxCommits, "Maximum number of commits to analyze")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Bool("utc", false, "Display timestamps in UTC instead of local time")
	rootCmd.PersistentFlags().String("cache", "yes", "Enable in-memory result caching (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("cache-capacity", schema.DefaultCacheCapacity, "Maximum number of cached analysis results")
	rootCmd.PersistentFlags().String("run-backend", string(schema.SQLiteBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")

	// Analyzer tuning flags
	rootCmd.PersistentFlags().Int("velocity-window", 0, "Velocity bucket size in days (0 = default)")
	rootCmd.PersistentFlags().Float64("peak-threshold", 0, "Standard deviations above the mean for peak periods (0 = default)")
	rootCmd.PersistentFlags().Float64("bus-coverage", 0, "Commit share that defines the bus factor core (0 = default)")
	rootCmd.PersistentFlags().Float64("ownership-threshold", 0, "Ownership share that marks a knowledge silo (0 = default)")
	rootCmd.PersistentFlags().Int("silo-min-touches", 0, "Minimum touches before a category can be a silo (0 = default)")
	rootCmd.PersistentFlags().Int("large-change-files", 0, "File count above which a commit is a large change (0 = default)")
	rootCmd.PersistentFlags().Float64("churn-percentile", 0, "Percentile cutoff for high-churn files (0 = default)")
	rootCmd.PersistentFlags().Int("hotspot-limit", 0, "Number of hotspot files to report (0 = default)")
	rootCmd.PersistentFlags().Int("top-pair-limit", 0, "Number of collaboration pairs to report (0 = default)")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runsCmd to Viper
	runsCmd.Flags().Int("run-limit", contract.DefaultRunLimit, "Number of recent runs to display")
	if err := viper.BindPFlags(runsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
