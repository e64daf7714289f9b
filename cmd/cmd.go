// Package cmd defines the command-line interface for matchgrade.
package cmd

import (
	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(recomputeCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(baselineCmd)
	rootCmd.AddCommand(storeCmd)

	// Add the roster subcommands to the parent roster command
	rosterCmd.AddCommand(rosterLoadCmd)
	rosterCmd.AddCommand(rosterStatusCmd)

	// Add the baseline subcommands to the parent baseline command
	baselineCmd.AddCommand(baselineLoadCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-player impact, positions and role confidence")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log extraction diagnostics to stderr")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Grading flags are shared by grade and recompute
	for _, c := range []*cobra.Command{gradeCmd, recomputeCmd} {
		c.Flags().Bool("explain", false, "Print the top grade contributors per player")
		c.Flags().Bool("dry-run", false, "Grade without recording or publishing")
		c.Flags().String("roster-file", "", "Read the roster from a YAML/JSON/TOML file instead of the store")
		c.Flags().String("publish-redis-url", "", "Publish graded matches to this Redis server (redis://...)")
		c.Flags().String("publish-stream", contract.DefaultPublishStream, "Redis stream for published matches")
		c.Flags().Int("min-minutes-outfield", contract.DefaultMinMinutesOutfield, "Minutes an outfield player needs to be graded")
		c.Flags().Int("min-minutes-keeper", contract.DefaultMinMinutesKeeper, "Minutes a goalkeeper needs to be graded")
		c.Flags().Int("best-min-minutes", contract.DefaultBestMinMinutes, "Minutes a player needs to be best performer")
		c.Flags().Int("short-hint-threshold", contract.DefaultShortHintThreshold, "Minutes below which a sub hint is attached")
	}
	// Each command binds its own flag set when it runs, since viper keys are global.
	gradeCmd.PreRunE = bindAndSetup
	recomputeCmd.PreRunE = bindAndSetup

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}

// bindAndSetup binds the running command's local flags before the shared setup.
func bindAndSetup(cmd *cobra.Command, args []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	return sharedSetup(cmd, args)
}
