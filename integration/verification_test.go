//go:build basic

// Package integration contains end-to-end tests for the matchgrade binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/matchgrade/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqliteEnv points the default SQLite file into a private home directory.
func sqliteEnv(t *testing.T) []string {
	return []string{"HOME=" + t.TempDir(), "MATCHGRADE_STORE_BACKEND=sqlite"}
}

// TestGradeVerification grades a report end to end and verifies the JSON payload.
func TestGradeVerification(t *testing.T) {
	dir := writeFixtures(t)
	env := sqliteEnv(t)

	_, err := runCommand(t, dir, env, "roster", "load", "roster.yaml")
	require.NoError(t, err)
	_, err = runCommand(t, dir, env, "baseline", "load", "baselines.yaml")
	require.NoError(t, err)

	out, err := runCommand(t, dir, env, "grade", reportName, "--output", "json")
	require.NoError(t, err)

	var results []struct {
		SourcePath string               `json:"sourcePath"`
		Error      string               `json:"error"`
		Match      *schema.MatchPayload `json:"match"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	require.Empty(t, results[0].Error)

	match := results[0].Match
	require.NotNil(t, match)
	assert.Equal(t, "2026-03-12-home-fc-away-fc", match.MatchID)
	assert.Equal(t, "2-1", match.Score)
	assert.NotNil(t, match.BestPerformers.Home)

	for _, p := range match.Players {
		t.Run(p.Name, func(t *testing.T) {
			if p.GameGrade == nil || p.GameGrade.Overall10 == nil {
				return
			}
			assert.GreaterOrEqual(t, *p.GameGrade.Overall10, 1.0)
			assert.LessOrEqual(t, *p.GameGrade.Overall10, 10.0)
			if p.PlayerID == "p-smith" {
				require.NotNil(t, p.Delta)
			}
		})
	}

	status, err := runCommand(t, dir, env, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, status, "Total Imports: 1")
}

// TestDryRunVerification checks that a dry run with a roster file leaves the store empty.
func TestDryRunVerification(t *testing.T) {
	dir := writeFixtures(t)
	env := sqliteEnv(t)

	_, err := runCommand(t, dir, env, "grade", reportName, "--dry-run", "--roster-file", filepath.Join(dir, "roster.yaml"))
	require.NoError(t, err)

	status, err := runCommand(t, dir, env, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, status, "Total Imports: 0")
}

// TestRulesVerification checks the rules listing covers every outfield role.
func TestRulesVerification(t *testing.T) {
	dir := writeFixtures(t)
	out, err := runCommand(t, dir, sqliteEnv(t), "rules", "--output", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, []string{"role", "metric", "weight", "target", "inverted", "gate"}, records[0])

	seen := make(map[string]bool)
	for _, rec := range records[1:] {
		seen[rec[0]] = true
	}
	for _, role := range schema.AllRoles {
		assert.True(t, seen[string(role)], "missing rules for %s", role)
	}
}
