package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/huangsam/matchgrade/core"
	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/internal/docsource"
	"github.com/huangsam/matchgrade/internal/iocache"
	"github.com/huangsam/matchgrade/internal/publisher"
	"github.com/huangsam/matchgrade/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// storeManager is the persistence manager used by commands.
var storeManager contract.StoreManager = iocache.Manager

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "matchgrade",
	Short:              "Extract and grade football match reports.",
	Long:               `Matchgrade turns match report documents into per-player stats, grades and best performers.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigFile()

	// Set environment variable prefix
	viper.SetEnvPrefix("MATCHGRADE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("store-backend", schema.SQLiteBackend)
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("publish-stream", contract.DefaultPublishStream)
	viper.SetDefault("min-minutes-outfield", contract.DefaultMinMinutesOutfield)
	viper.SetDefault("min-minutes-keeper", contract.DefaultMinMinutesKeeper)
	viper.SetDefault("best-min-minutes", contract.DefaultBestMinMinutes)
	viper.SetDefault("short-hint-threshold", contract.DefaultShortHintThreshold)
	viper.SetDefault("color", "yes")
}

// setConfigFile points viper at --config or the default .matchgrade.yaml locations.
func setConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".matchgrade") // Name of config file (without extension)
	viper.SetConfigType("yaml")        // We'll use YAML format
	viper.AddConfigPath(".")           // Look in the current directory
	viper.AddConfigPath("$HOME")       // Look in the home directory
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	setConfigFile()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// sharedSetup unmarshals config, runs validation and opens the stores.
func sharedSetup(_ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.Files = args

	// 4. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	configureLogger()

	// 5. Initialize persistence layer with validated config
	if err := iocache.InitStores(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	return nil
}

// resolveStoreConfig reads only the store settings. Store commands use it so
// that grading flags and weights are not validated for maintenance work.
func resolveStoreConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := strings.ToLower(viper.GetString("store-backend"))
	if backendStr == "" {
		backendStr = string(schema.SQLiteBackend)
	}
	backend := schema.DatabaseBackend(backendStr)
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}
	connStr := viper.GetString("store-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Verbose = viper.GetBool("verbose")
	configureLogger()
	return nil
}

// storeSetup resolves the store settings and opens the stores.
func storeSetup(_ *cobra.Command, _ []string) error {
	if err := resolveStoreConfig(); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	return nil
}

// storeMaintenanceSetup resolves the store settings without opening the
// stores, so that migrations and clearing work on any schema version.
func storeMaintenanceSetup(_ *cobra.Command, _ []string) error {
	return resolveStoreConfig()
}

// configureLogger routes pipeline diagnostics to stderr with --verbose.
func configureLogger() {
	if !cfg.Verbose {
		return
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rootCtx = core.WithLogger(rootCtx, logger)
}

// newDocumentSource returns a file source backed by the store's text cache.
func newDocumentSource() contract.DocumentSource {
	return docsource.NewFileSource(storeManager.GetDocumentCache())
}

// newPublisher connects to the Redis stream when --publish-redis-url is set.
// A nil publisher disables announcements.
func newPublisher() (contract.MatchPublisher, error) {
	if cfg.PublishRedisURL == "" || cfg.DryRun {
		return nil, nil
	}
	pub, err := publisher.NewRedisStreamPublisher(cfg.PublishRedisURL, cfg.PublishStream)
	if err != nil {
		return nil, fmt.Errorf("failed to connect publisher: %w", err)
	}
	return pub, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetStoreManager sets the persistence manager used by commands.
func SetStoreManager(mgr contract.StoreManager) {
	storeManager = mgr
}
