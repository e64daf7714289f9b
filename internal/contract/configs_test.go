package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/matchgrade/schema"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Files:     []string{"Home - Away 2-1.pdf"},
		Workers:   4,
		Precision: 1,
		Output:    "text",
		Color:     "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "invalid workers (zero)", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "invalid precision (too high)", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: true},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet without file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{
			name: "parquet with file",
			mutate: func(in *ConfigRawInput) {
				in.Output = "parquet"
				in.OutputFile = "grades.parquet"
			},
		},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
		{name: "invalid backend", mutate: func(in *ConfigRawInput) { in.StoreBackend = "mongo" }, expectError: true},
		{name: "mysql without dsn", mutate: func(in *ConfigRawInput) { in.StoreBackend = "mysql" }, expectError: true},
		{
			name: "postgres with dsn",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = "postgresql"
				in.StoreDBConnect = "host=localhost dbname=matchgrade"
			},
		},
		{name: "bad redis url", mutate: func(in *ConfigRawInput) { in.PublishRedisURL = "localhost:6379" }, expectError: true},
		{name: "minutes out of range", mutate: func(in *ConfigRawInput) { in.MinMinutesKeeper = 200 }, expectError: true},
		{
			name: "weights sum to one",
			mutate: func(in *ConfigRawInput) {
				in.Weights = map[string]map[string]float64{"striker": {"goals_p90": 0.25, "xg_p90": 0.10}}
			},
		},
		{
			name: "weights do not sum to one",
			mutate: func(in *ConfigRawInput) {
				in.Weights = map[string]map[string]float64{"striker": {"goals_p90": 0.5}}
			},
			expectError: true,
		},
		{
			name: "weights for unknown metric",
			mutate: func(in *ConfigRawInput) {
				in.Weights = map[string]map[string]float64{"center_back": {"dribbles_p90": 0.1}}
			},
			expectError: true,
		},
		{
			name: "weights for goalkeeper",
			mutate: func(in *ConfigRawInput) {
				in.Weights = map[string]map[string]float64{"goalkeeper": {"save_pct": 1}}
			},
			expectError: true,
		},
		{
			name: "keeper weights",
			mutate: func(in *ConfigRawInput) {
				in.KeeperWeights = map[string]float64{"save_pct": 0.6, "xcg_prevented_p90": 0.2}
			},
		},
		{
			name: "keeper weights bad key",
			mutate: func(in *ConfigRawInput) {
				in.KeeperWeights = map[string]float64{"saves": 0.5}
			},
			expectError: true,
		},
		{
			name: "sibling rule with one member",
			mutate: func(in *ConfigRawInput) {
				in.Aliases.Siblings = []schema.SiblingRule{{Surname: "Kovac", Members: []schema.SiblingMember{{PlayerID: "p1", Number: 4}}}}
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, DefaultMinMinutesOutfield, cfg.MinMinutesOutfield)
	assert.Equal(t, DefaultMinMinutesKeeper, cfg.MinMinutesKeeper)
	assert.Equal(t, DefaultBestMinMinutes, cfg.BestMinMinutes)
	assert.Equal(t, DefaultShortHintThreshold, cfg.ShortHintThreshold)
	assert.Equal(t, DefaultPublishStream, cfg.PublishStream)
	assert.Equal(t, schema.GetDefaultKeeperWeights(), cfg.KeeperWeights)
	assert.Empty(t, cfg.CustomWeights)
	assert.True(t, cfg.UseColors)
}

func TestProcessWeightsRawInput(t *testing.T) {
	raw := map[string]map[string]float64{
		"Striker": {"GOALS_P90": 0.25, "xg_p90": 0.10},
	}
	got, err := ProcessWeightsRawInput(raw, true)
	require.NoError(t, err)
	assert.Equal(t, map[schema.Role]map[schema.MetricKey]float64{
		schema.RoleStriker: {schema.MetricGoalsP90: 0.25, schema.MetricXGP90: 0.10},
	}, got)

	_, err = ProcessWeightsRawInput(map[string]map[string]float64{"striker": {"goals_p90": 0.9}}, false)
	assert.NoError(t, err, "sum is only checked on request")

	_, err = ProcessWeightsRawInput(map[string]map[string]float64{"libero": {"goals_p90": 1}}, false)
	assert.Error(t, err)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		Files:         []string{"a.pdf"},
		CustomWeights: map[schema.Role]map[schema.MetricKey]float64{schema.RoleStriker: {schema.MetricGoalsP90: 0.2}},
		KeeperWeights: map[schema.MetricKey]float64{schema.KeeperSavePct: 1},
		Aliases:       schema.AliasConfig{Players: map[string]string{"a": "b"}},
	}
	clone := cfg.Clone()
	clone.Files[0] = "b.pdf"
	clone.CustomWeights[schema.RoleStriker][schema.MetricGoalsP90] = 0.9
	clone.KeeperWeights[schema.KeeperSavePct] = 0
	clone.Aliases.Players["a"] = "c"

	assert.Equal(t, "a.pdf", cfg.Files[0])
	assert.Equal(t, 0.2, cfg.CustomWeights[schema.RoleStriker][schema.MetricGoalsP90])
	assert.Equal(t, 1.0, cfg.KeeperWeights[schema.KeeperSavePct])
	assert.Equal(t, "b", cfg.Aliases.Players["a"])
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none", schema.NoneBackend, "", false},
		{"mysql ok", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/matchgrade", false},
		{"mysql no tcp", schema.MySQLBackend, "user:pass@localhost/matchgrade", true},
		{"postgres ok", schema.PostgreSQLBackend, "host=localhost dbname=matchgrade", false},
		{"postgres no dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
