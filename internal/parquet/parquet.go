// Package parquet exports matchgrade import data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/huangsam/matchgrade/schema"
)

// ImportRun is one import of a match report.
// This struct maps to the matchgrade_imports database table.
type ImportRun struct {
	// ImportID is the unique identifier for this import run
	ImportID int64 `parquet:"import_id,snappy"`

	// MatchID is the deterministic match identifier (empty when the import failed)
	MatchID string `parquet:"match_id,snappy"`

	// SourcePath is the report file the import read
	SourcePath string `parquet:"source_path,snappy"`

	// StartTime is when the import began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the import completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the import in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	HomeTeam string `parquet:"home_team,snappy"`
	AwayTeam string `parquet:"away_team,snappy"`
	Score    string `parquet:"score,snappy"`

	// MatchDate is the yyyy-mm-dd date from the report header (nullable)
	MatchDate *string `parquet:"match_date,optional,snappy"`

	// Round is the round number from the report header (nullable)
	Round *string `parquet:"round,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// PlayerGrade is the grade of one player in one import.
// This struct maps to the matchgrade_player_grades database table.
type PlayerGrade struct {
	ImportID      int64    `parquet:"import_id,snappy"`
	MatchID       string   `parquet:"match_id,snappy"`
	PlayerKey     string   `parquet:"player_key,snappy"`
	PlayerID      *string  `parquet:"player_id,optional,snappy"`
	TeamID        *string  `parquet:"team_id,optional,snappy"`
	Side          string   `parquet:"side,snappy"`
	Name          string   `parquet:"name,snappy"`
	Role          string   `parquet:"role,snappy"`
	MinutesPlayed int32    `parquet:"minutes_played,snappy"`
	Overall10     *float64 `parquet:"overall10,optional,snappy"`
	Overall100    *float64 `parquet:"overall100,optional,snappy"`
	Delta         *float64 `parquet:"delta,optional,snappy"`
	ImpactScore   float64  `parquet:"impact_score,snappy"`
	Unresolved    bool     `parquet:"unresolved,snappy"`

	// StatsJSON holds the flattened stats as a JSON object
	StatsJSON string `parquet:"stats_json,snappy"`
}

// writeRows writes rows to a new Parquet file, inferring the schema from T.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteImportRunsParquet writes import runs to a Parquet file.
func WriteImportRunsParquet(data []ImportRun, outputPath string) error {
	return writeRows(data, outputPath)
}

// WritePlayerGradesParquet writes player grades to a Parquet file.
func WritePlayerGradesParquet(data []PlayerGrade, outputPath string) error {
	return writeRows(data, outputPath)
}

// ConvertImportRunRecords converts schema.ImportRunRecord to ImportRun for Parquet export.
func ConvertImportRunRecords(records []schema.ImportRunRecord) []ImportRun {
	result := make([]ImportRun, len(records))
	for i, r := range records {
		result[i] = ImportRun{
			ImportID:      r.ImportID,
			MatchID:       r.MatchID,
			SourcePath:    r.SourcePath,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			HomeTeam:      r.HomeTeam,
			AwayTeam:      r.AwayTeam,
			Score:         r.Score,
			MatchDate:     r.MatchDate,
			Round:         r.Round,
			ConfigParams:  r.ConfigParams,
		}
	}
	return result
}

// ConvertPlayerGradeRecords converts schema.PlayerGradeRecord to PlayerGrade for Parquet export.
func ConvertPlayerGradeRecords(records []schema.PlayerGradeRecord) []PlayerGrade {
	result := make([]PlayerGrade, len(records))
	for i, r := range records {
		result[i] = PlayerGrade(r)
	}
	return result
}
