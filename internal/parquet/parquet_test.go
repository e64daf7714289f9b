package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/matchgrade/schema"
)

func strPtr(s string) *string        { return &s }
func f64Ptr(v float64) *float64      { return &v }
func i32Ptr(v int32) *int32          { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func sampleImports() []schema.ImportRunRecord {
	start := time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC)
	return []schema.ImportRunRecord{
		{
			ImportID:      1,
			MatchID:       "2026-03-12-home-fc-away-fc",
			SourcePath:    "/reports/Home FC - Away FC 2-1.pdf",
			StartTime:     start,
			EndTime:       timePtr(start.Add(2 * time.Second)),
			RunDurationMs: i32Ptr(2000),
			HomeTeam:      "Home FC",
			AwayTeam:      "Away FC",
			Score:         "2-1",
			MatchDate:     strPtr("2026-03-12"),
			Round:         strPtr("5"),
			ConfigParams:  strPtr(`{"workers":4}`),
		},
		{ImportID: 2, SourcePath: "/reports/broken.pdf", StartTime: start.Add(time.Hour)},
	}
}

func sampleGrades() []schema.PlayerGradeRecord {
	return []schema.PlayerGradeRecord{
		{
			ImportID: 1, MatchID: "2026-03-12-home-fc-away-fc", PlayerKey: "Cara Smith|home|9",
			PlayerID: strPtr("p-smith"), TeamID: strPtr("home-fc"), Side: "home", Name: "Cara Smith",
			Role: "striker", MinutesPlayed: 75, Overall10: f64Ptr(7.4), Overall100: f64Ptr(73.8),
			Delta: f64Ptr(1.4), ImpactScore: 7, StatsJSON: `{"goals":1}`,
		},
		{
			ImportID: 1, MatchID: "2026-03-12-home-fc-away-fc", PlayerKey: "Gia Sub||19",
			Name: "Gia Sub", Role: "striker", MinutesPlayed: 15, Unresolved: true, StatsJSON: `{}`,
		},
	}
}

// TestStructTags tests that the inferred schemas expose the expected columns.
func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		schema  *parquet.Schema
		columns []string
	}{
		{
			name:    "import runs",
			schema:  parquet.SchemaOf(new(ImportRun)),
			columns: []string{"import_id", "match_id", "source_path", "start_time", "end_time", "run_duration_ms", "match_date", "round", "config_params"},
		},
		{
			name:    "player grades",
			schema:  parquet.SchemaOf(new(PlayerGrade)),
			columns: []string{"import_id", "player_key", "player_id", "side", "role", "overall10", "overall100", "delta", "impact_score", "unresolved", "stats_json"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, col := range tt.columns {
				_, ok := tt.schema.Lookup(col)
				assert.True(t, ok, "column %s should exist", col)
			}
		})
	}
}

// TestWriteAndReadBack tests that written rows can be read back unchanged.
func TestWriteAndReadBack(t *testing.T) {
	dir := t.TempDir()

	t.Run("import runs", func(t *testing.T) {
		path := filepath.Join(dir, "imports.parquet")
		data := ConvertImportRunRecords(sampleImports())
		require.NoError(t, WriteImportRunsParquet(data, path))

		rows, err := parquet.ReadFile[ImportRun](path)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, data[0].MatchID, rows[0].MatchID)
		assert.True(t, data[0].StartTime.Equal(rows[0].StartTime))
		require.NotNil(t, rows[0].Round)
		assert.Equal(t, "5", *rows[0].Round)
		assert.Nil(t, rows[1].EndTime)
		assert.Nil(t, rows[1].MatchDate)
	})

	t.Run("player grades", func(t *testing.T) {
		path := filepath.Join(dir, "grades.parquet")
		data := ConvertPlayerGradeRecords(sampleGrades())
		require.NoError(t, WritePlayerGradesParquet(data, path))

		rows, err := parquet.ReadFile[PlayerGrade](path)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.NotNil(t, rows[0].Overall10)
		assert.InDelta(t, 7.4, *rows[0].Overall10, 1e-9)
		assert.True(t, rows[1].Unresolved)
		assert.Nil(t, rows[1].PlayerID)
		assert.Nil(t, rows[1].Overall10)
	})
}

// TestWriteInvalidPath tests that an unwritable path fails cleanly.
func TestWriteInvalidPath(t *testing.T) {
	dir := t.TempDir()
	err := WriteImportRunsParquet(nil, filepath.Join(dir, "missing", "out.parquet"))
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(statErr))
}

// TestConvertEmpty tests that empty inputs convert to empty slices.
func TestConvertEmpty(t *testing.T) {
	assert.Empty(t, ConvertImportRunRecords(nil))
	assert.Empty(t, ConvertPlayerGradeRecords(nil))
}
