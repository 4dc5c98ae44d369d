package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teampulse/teampulse/core"
	"github.com/teampulse/teampulse/internal/contract"
	"github.com/teampulse/teampulse/internal/runstore"
	"github.com/teampulse/teampulse/schema"
)

// runsMigrateSetup loads minimal configuration needed for migrate operations.
// It does NOT open the run store or create tables, allowing migrations to run
// on a fresh database.
func runsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("run-backend"))
	connStr := viper.GetString("run-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.RunBackend = backend
	cfg.RunDBConnect = connStr

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for the migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd lists the persisted run history.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show the recorded analysis run history",
	Long: `List past analysis runs recorded in the run history store.

Every report run records its window, commit and author counts, health score
and whether any section failed. The history enables trend tracking across
weeks of reports without re-reading Git history.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Examples:
  # Show the 20 most recent runs
  teampulse runs

  # Show more history as JSON
  teampulse runs --run-limit 100 --output json

  # Export run rows to parquet
  teampulse runs --output parquet --output-file runs.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRuns(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list run history", err)
		}
	},
}

// runsMigrateCmd manages schema versions for the run history store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  teampulse runs migrate

  # Migrate to specific version
  teampulse runs migrate --target-version 1

  # Rollback to initial state
  teampulse runs migrate --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.Migrate(cfg.RunBackend, cfg.RunDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
