package cmd

import (
	"errors"
	"fmt"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/internal/iocache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeCmd focused on import history management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by grading commands. This avoids validating
// grading flags and weights for simple maintenance operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage import history and exports",
	Long: `Manage the store holding import runs and player grades.

Every graded report is tracked as an import run, storing:
- Run metadata (source path, timestamps, configuration, duration)
- Per-player grades, roles and flat stats

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show import statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all stored data
  migrate - Run database schema migrations

Examples:
  # Check store status
  matchgrade store status

  # Export for analysis in pandas/DuckDB
  matchgrade store export --output-file season.parquet`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display import statistics and connection details",
	Args:    cobra.NoArgs,
	PreRunE: storeSetup,
	Run: func(cmd *cobra.Command, _ []string) {
		sink := storeManager.GetMatchSink()
		if sink == nil {
			contract.LogFatal("Failed to get store status", errors.New("match store is not initialized"))
		}
		status, err := sink.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iocache.PrintMatchSinkStatus(cmd.OutOrStdout(), status)
	},
}

// storeExportCmd exports store data to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export import runs and player grades to Parquet",
	Long: `Export all stored data to Parquet format for use with analytics tools.

Writes two files:
- <output-file>.imports.parquet - one row per import run
- <output-file>.player_grades.parquet - one row per graded player

Requires: --output-file parameter

Examples:
  matchgrade store export --output-file season
  duckdb -c "SELECT * FROM read_parquet('season.player_grades.parquet') LIMIT 10"`,
	Args:    cobra.NoArgs,
	PreRunE: storeSetup,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := iocache.ExportMatches(cmd.OutOrStdout(), storeManager.GetMatchSink(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export store data", err)
		}
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored data",
	Long: `Delete the roster, baselines, import runs, player grades and cached text.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  matchgrade store export --output-file backup
  matchgrade store clear`,
	Args:    cobra.NoArgs,
	PreRunE: storeMaintenanceSetup,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := iocache.ClearStore(cfg.StoreBackend, contract.GetDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		cmd.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs database migrations for the store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  matchgrade store migrate

  # Rollback all migrations
  matchgrade store migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: storeMaintenanceSetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.Migrate(cmd.OutOrStdout(), cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		return nil
	},
}
