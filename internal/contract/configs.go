package contract

import (
	"fmt"
	"maps"
	"math"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/matchgrade/schema"
)

// Default values for configuration.
const (
	DefaultPrecision          = 1
	DefaultMinMinutesOutfield = 30
	DefaultMinMinutesKeeper   = 45
	DefaultBestMinMinutes     = 45
	DefaultShortHintThreshold = 30
	DefaultPublishStream      = "matchgrade:matches"
	MaxMinutes                = 120
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for an import.
// This struct remains the "final, validated" config.
type Config struct {
	Files      []string
	Workers    int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Detail     bool
	Explain    bool
	Width      int // Terminal width override (0 = auto-detect)
	DryRun     bool
	Verbose    bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext
	RosterFile     string

	PublishRedisURL string
	PublishStream   string

	MinMinutesOutfield int
	MinMinutesKeeper   int
	BestMinMinutes     int
	ShortHintThreshold int

	// Aliases holds the swappable name tables used by identity resolution
	Aliases schema.AliasConfig

	// CustomWeights is a mapping of [Role][MetricKey] = Weight
	CustomWeights map[schema.Role]map[schema.MetricKey]float64

	// KeeperWeights is the final goalkeeper blend, defaults merged with overrides
	KeeperWeights map[schema.MetricKey]float64

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	Files []string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile     string `mapstructure:"output-file"`
	Workers        int    `mapstructure:"workers"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	Detail         bool   `mapstructure:"detail"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Color          string `mapstructure:"color"`
	Verbose        bool   `mapstructure:"verbose"`

	// --- Fields from gradeCmd.Flags() ---
	Explain            bool   `mapstructure:"explain"`
	DryRun             bool   `mapstructure:"dry-run"`
	RosterFile         string `mapstructure:"roster-file"`
	PublishRedisURL    string `mapstructure:"publish-redis-url"`
	PublishStream      string `mapstructure:"publish-stream"`
	MinMinutesOutfield int    `mapstructure:"min-minutes-outfield"`
	MinMinutesKeeper   int    `mapstructure:"min-minutes-keeper"`
	BestMinMinutes     int    `mapstructure:"best-min-minutes"`
	ShortHintThreshold int    `mapstructure:"short-hint-threshold"`

	// --- Name tables from config file ---
	Aliases schema.AliasConfig `mapstructure:"aliases"`

	// --- Custom weights from config file, role -> metric -> weight ---
	Weights map[string]map[string]float64 `mapstructure:"weights"`

	// --- Goalkeeper blend from config file, component -> weight ---
	KeeperWeights map[string]float64 `mapstructure:"keeper_weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Files = slices.Clone(c.Files)
	if c.CustomWeights != nil {
		clone.CustomWeights = make(map[schema.Role]map[schema.MetricKey]float64, len(c.CustomWeights))
		for role, roleMap := range c.CustomWeights {
			clone.CustomWeights[role] = maps.Clone(roleMap)
		}
	}
	clone.KeeperWeights = maps.Clone(c.KeeperWeights)
	clone.Aliases = schema.AliasConfig{
		Players:  maps.Clone(c.Aliases.Players),
		Teams:    maps.Clone(c.Aliases.Teams),
		Siblings: slices.Clone(c.Aliases.Siblings),
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateStoreConfig(cfg, input); err != nil {
		return err
	}
	if err := processMinutes(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	if err := processKeeperWeights(cfg, input); err != nil {
		return err
	}
	return processAliases(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-store fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Files = input.Files
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.DryRun = input.DryRun
	cfg.Verbose = input.Verbose
	cfg.RosterFile = strings.TrimSpace(input.RosterFile)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	cfg.PublishRedisURL = strings.TrimSpace(input.PublishRedisURL)
	cfg.PublishStream = strings.TrimSpace(input.PublishStream)
	if cfg.PublishStream == "" {
		cfg.PublishStream = DefaultPublishStream
	}
	if cfg.PublishRedisURL != "" && !strings.HasPrefix(cfg.PublishRedisURL, "redis://") && !strings.HasPrefix(cfg.PublishRedisURL, "rediss://") {
		return fmt.Errorf("publish-redis-url must start with redis:// or rediss:// (received %q)", cfg.PublishRedisURL)
	}
	return nil
}

// validateStoreConfig validates the persistence backend configuration.
func validateStoreConfig(cfg *Config, input *ConfigRawInput) error {
	backend := strings.ToLower(input.StoreBackend)
	if backend == "" {
		backend = string(schema.SQLiteBackend)
	}
	cfg.StoreBackend = schema.DatabaseBackend(backend)
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// processMinutes applies defaults to the minute thresholds and checks their range.
func processMinutes(cfg *Config, input *ConfigRawInput) error {
	thresholds := []struct {
		name  string
		value int
		def   int
		dst   *int
	}{
		{"min-minutes-outfield", input.MinMinutesOutfield, DefaultMinMinutesOutfield, &cfg.MinMinutesOutfield},
		{"min-minutes-keeper", input.MinMinutesKeeper, DefaultMinMinutesKeeper, &cfg.MinMinutesKeeper},
		{"best-min-minutes", input.BestMinMinutes, DefaultBestMinMinutes, &cfg.BestMinMinutes},
		{"short-hint-threshold", input.ShortHintThreshold, DefaultShortHintThreshold, &cfg.ShortHintThreshold},
	}
	for _, th := range thresholds {
		v := th.value
		if v == 0 {
			v = th.def
		}
		if v < 0 || v > MaxMinutes {
			return fmt.Errorf("%s must be between 0 and %d (received %d)", th.name, MaxMinutes, v)
		}
		*th.dst = v
	}
	return nil
}

// ProcessWeightsRawInput converts the raw role weights into typed overrides.
// If validateSum is true, each overridden role's merged rule weights must sum to 1.0.
func ProcessWeightsRawInput(weights map[string]map[string]float64, validateSum bool) (map[schema.Role]map[schema.MetricKey]float64, error) {
	result := make(map[schema.Role]map[schema.MetricKey]float64)
	for roleName, raw := range weights {
		role := schema.Role(strings.ToLower(roleName))
		if _, ok := schema.ValidRoles[role]; !ok {
			return nil, fmt.Errorf("invalid role '%s' in weights", roleName)
		}
		rules := schema.GetDefaultRules(role)
		if len(rules) == 0 {
			return nil, fmt.Errorf("role %s has no rule list; use keeper_weights for goalkeepers", role)
		}

		known := make(map[schema.MetricKey]float64, len(rules))
		for _, r := range rules {
			known[r.Key] = r.Weight
		}
		roleMap := make(map[schema.MetricKey]float64, len(raw))
		for metricName, w := range raw {
			key := schema.MetricKey(strings.ToLower(metricName))
			if _, ok := known[key]; !ok {
				return nil, fmt.Errorf("metric '%s' is not graded for role %s", metricName, role)
			}
			if w < 0 {
				return nil, fmt.Errorf("weight for %s.%s cannot be negative (received %.3f)", role, key, w)
			}
			roleMap[key] = w
		}
		if len(roleMap) == 0 {
			continue
		}

		if validateSum {
			maps.Copy(known, roleMap)
			sum := 0.0
			for _, w := range known {
				sum += w
			}
			if math.Abs(sum-1) > 0.001 {
				return nil, fmt.Errorf("custom weights for role %s must sum to 1.0, got %.3f", role, sum)
			}
		}
		result[role] = roleMap
	}
	return result, nil
}

// processCustomWeights converts the raw input into the final cfg.CustomWeights map.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	weights, err := ProcessWeightsRawInput(input.Weights, true)
	if err != nil {
		return err
	}
	cfg.CustomWeights = weights
	return nil
}

// processKeeperWeights merges goalkeeper blend overrides into the defaults.
func processKeeperWeights(cfg *Config, input *ConfigRawInput) error {
	weights := schema.GetDefaultKeeperWeights()
	for name, w := range input.KeeperWeights {
		key := schema.MetricKey(strings.ToLower(name))
		if _, ok := weights[key]; !ok {
			return fmt.Errorf("invalid keeper weight '%s'. must be %s, %s or %s", name, schema.KeeperSavePct, schema.KeeperXCGDiff, schema.KeeperConceded)
		}
		if w < 0 {
			return fmt.Errorf("keeper weight %s cannot be negative (received %.3f)", key, w)
		}
		weights[key] = w
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1) > 0.001 {
		return fmt.Errorf("keeper weights must sum to 1.0, got %.3f", sum)
	}
	cfg.KeeperWeights = weights
	return nil
}

// processAliases validates the name tables from the config file.
func processAliases(cfg *Config, input *ConfigRawInput) error {
	for i, rule := range input.Aliases.Siblings {
		if strings.TrimSpace(rule.Surname) == "" {
			return fmt.Errorf("sibling rule %d has no surname", i)
		}
		if len(rule.Members) < 2 {
			return fmt.Errorf("sibling rule for %q needs at least two members", rule.Surname)
		}
		for _, m := range rule.Members {
			if m.PlayerID == "" {
				return fmt.Errorf("sibling rule for %q has a member without player_id", rule.Surname)
			}
			if m.Number == 0 && m.Hint == "" {
				return fmt.Errorf("sibling member %s needs a number or a hint", m.PlayerID)
			}
		}
	}
	cfg.Aliases = input.Aliases
	return nil
}
