package iocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
)

// MatchSinkImpl stores import runs and the player grades they produced.
type MatchSinkImpl struct {
	*sqlBase
}

var _ contract.MatchSink = &MatchSinkImpl{} // Compile-time check

// BeginImport creates a new import run and returns its unique ID.
func (ms *MatchSinkImpl) BeginImport(ctx context.Context, sourcePath string, startTime time.Time, configParams map[string]any) (int64, error) {
	if ms.disabled() {
		return 0, nil
	}
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	var importID int64
	switch ms.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (source_path, start_time, config_params) VALUES ($1, $2, $3) RETURNING import_id`, ms.q(importsTable))
		err = ms.db.QueryRowContext(ctx, query, sourcePath, startTime, string(configJSON)).Scan(&importID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (source_path, start_time, config_params) VALUES (?, ?, ?)`, ms.q(importsTable))
		var result sql.Result
		result, err = ms.db.ExecContext(ctx, query, sourcePath, formatTime(startTime, ms.backend), string(configJSON))
		if err == nil {
			importID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert import run: %w", err)
	}
	return importID, nil
}

// nullString maps "" to NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// RecordMatch stores the match header on the import run and one grade row per player.
func (ms *MatchSinkImpl) RecordMatch(ctx context.Context, importID int64, payload *schema.MatchPayload) error {
	if ms.disabled() || payload == nil {
		return nil
	}
	tx, err := ms.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin match transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	update := rebind(fmt.Sprintf(`UPDATE %s SET match_id = ?, home_team = ?, away_team = ?, score = ?, match_date = ?, round = ? WHERE import_id = ?`, ms.q(importsTable)), ms.backend)
	if _, err := tx.ExecContext(ctx, update, payload.MatchID, payload.HomeTeam, payload.AwayTeam, payload.Score,
		nullString(payload.Date), nullString(payload.Round), importID); err != nil {
		return fmt.Errorf("failed to update import run %d: %w", importID, err)
	}

	insert := rebind(fmt.Sprintf(`
		INSERT INTO %s (import_id, match_id, player_key, player_id, team_id, side, name, role,
		                minutes_played, overall10, overall100, delta, impact_score, unresolved, stats_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ms.q(playerGradesTable)), ms.backend)
	records, err := schema.GradeRecords(importID, payload)
	if err != nil {
		return err
	}
	for _, r := range records {
		if _, err := tx.ExecContext(ctx, insert,
			r.ImportID, r.MatchID, r.PlayerKey, r.PlayerID, r.TeamID, r.Side, r.Name, r.Role,
			r.MinutesPlayed, r.Overall10, r.Overall100, r.Delta, r.ImpactScore, r.Unresolved, r.StatsJSON); err != nil {
			return fmt.Errorf("failed to insert grade for %s: %w", r.Name, err)
		}
	}
	return tx.Commit()
}

// EndImport updates the import run with completion data.
func (ms *MatchSinkImpl) EndImport(ctx context.Context, importID int64, endTime time.Time) error {
	if ms.disabled() {
		return nil
	}
	var raw any
	query := rebind(fmt.Sprintf(`SELECT start_time FROM %s WHERE import_id = ?`, ms.q(importsTable)), ms.backend)
	if err := ms.db.QueryRowContext(ctx, query, importID).Scan(&raw); err != nil {
		return fmt.Errorf("failed to get start_time for import %d: %w", importID, err)
	}
	startTime, err := parseTime(raw)
	if err != nil {
		return fmt.Errorf("failed to parse start_time: %w", err)
	}

	update := rebind(fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ? WHERE import_id = ?`, ms.q(importsTable)), ms.backend)
	if _, err := ms.db.ExecContext(ctx, update, formatTime(endTime, ms.backend), endTime.Sub(startTime).Milliseconds(), importID); err != nil {
		return fmt.Errorf("failed to update import run: %w", err)
	}
	return nil
}

// GetSourcePaths returns the distinct source paths of all recorded imports.
func (ms *MatchSinkImpl) GetSourcePaths(ctx context.Context) ([]string, error) {
	if ms.disabled() {
		return nil, nil
	}
	rows, err := ms.db.QueryContext(ctx, fmt.Sprintf("SELECT DISTINCT source_path FROM %s ORDER BY source_path", ms.q(importsTable)))
	if err != nil {
		return nil, fmt.Errorf("failed to query source paths: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan source path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// GetAllImports retrieves all import runs, oldest first.
func (ms *MatchSinkImpl) GetAllImports() ([]schema.ImportRunRecord, error) {
	if ms.disabled() {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT import_id, match_id, source_path, start_time, end_time, run_duration_ms,
		home_team, away_team, score, match_date, round, config_params FROM %s ORDER BY import_id`, ms.q(importsTable))
	rows, err := ms.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query import runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ImportRunRecord
	for rows.Next() {
		var r schema.ImportRunRecord
		var start, end any
		var duration sql.NullInt32
		if err := rows.Scan(&r.ImportID, &r.MatchID, &r.SourcePath, &start, &end, &duration,
			&r.HomeTeam, &r.AwayTeam, &r.Score, &r.MatchDate, &r.Round, &r.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		if r.StartTime, err = parseTime(start); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if r.EndTime, err = parseNullTime(end); err != nil {
			return nil, fmt.Errorf("failed to parse end_time: %w", err)
		}
		if duration.Valid {
			r.RunDurationMs = &duration.Int32
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating import runs: %w", err)
	}
	return results, nil
}

// GetAllPlayerGrades retrieves all player grades ordered by import and key.
func (ms *MatchSinkImpl) GetAllPlayerGrades() ([]schema.PlayerGradeRecord, error) {
	if ms.disabled() {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT import_id, match_id, player_key, player_id, team_id, side, name, role,
		minutes_played, overall10, overall100, delta, impact_score, unresolved, stats_json
		FROM %s ORDER BY import_id, player_key`, ms.q(playerGradesTable))
	rows, err := ms.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query player grades: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PlayerGradeRecord
	for rows.Next() {
		var r schema.PlayerGradeRecord
		if err := rows.Scan(&r.ImportID, &r.MatchID, &r.PlayerKey, &r.PlayerID, &r.TeamID, &r.Side, &r.Name,
			&r.Role, &r.MinutesPlayed, &r.Overall10, &r.Overall100, &r.Delta, &r.ImpactScore,
			&r.Unresolved, &r.StatsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan player grade: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player grades: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the match sink.
func (ms *MatchSinkImpl) GetStatus() (schema.MatchSinkStatus, error) {
	status := schema.MatchSinkStatus{
		Connected:  !ms.disabled(),
		TableSizes: make(map[string]int64),
	}
	if ms.sqlBase != nil {
		status.Backend = string(ms.backend)
	}
	if ms.disabled() {
		return status, nil
	}

	imports, err := countRows(ms.db, importsTable, ms.backend)
	if err != nil {
		return status, fmt.Errorf("failed to get total imports: %w", err)
	}
	grades, err := countRows(ms.db, playerGradesTable, ms.backend)
	if err != nil {
		return status, fmt.Errorf("failed to get total player grades: %w", err)
	}
	status.TotalImports = int(imports)
	status.TotalPlayers = int(grades)
	status.TableSizes[importsTable] = imports
	status.TableSizes[playerGradesTable] = grades
	if imports == 0 {
		return status, nil
	}

	var last, oldest any
	lastQuery := fmt.Sprintf("SELECT import_id, start_time FROM %s ORDER BY import_id DESC LIMIT 1", ms.q(importsTable))
	if err := ms.db.QueryRow(lastQuery).Scan(&status.LastImportID, &last); err != nil {
		return status, fmt.Errorf("failed to get last import: %w", err)
	}
	oldestQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY import_id ASC LIMIT 1", ms.q(importsTable))
	if err := ms.db.QueryRow(oldestQuery).Scan(&oldest); err != nil {
		return status, fmt.Errorf("failed to get oldest import: %w", err)
	}
	if status.LastImportTime, err = parseTime(last); err != nil {
		return status, fmt.Errorf("failed to parse last import time: %w", err)
	}
	if status.OldestImport, err = parseTime(oldest); err != nil {
		return status, fmt.Errorf("failed to parse oldest import time: %w", err)
	}
	return status, nil
}
