package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

// RosterStatus represents the status of the roster store.
type RosterStatus struct {
	Backend      string `json:"backend"`
	Connected    bool   `json:"connected"`
	TotalTeams   int    `json:"total_teams"`
	TotalPlayers int    `json:"total_players"`
	Baselines    int    `json:"total_baselines"`
}

// MatchSinkStatus represents the status of the match result store.
type MatchSinkStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalImports   int              `json:"total_imports"`
	LastImportID   int64            `json:"last_import_id"`
	LastImportTime time.Time        `json:"last_import_time"`
	OldestImport   time.Time        `json:"oldest_import_time"`
	TotalPlayers   int              `json:"total_players_graded"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}

// ImportRunRecord represents a row from the matchgrade_imports table.
type ImportRunRecord struct {
	ImportID      int64
	MatchID       string
	SourcePath    string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	HomeTeam      string
	AwayTeam      string
	Score         string
	MatchDate     *string
	Round         *string
	ConfigParams  *string
}

// PlayerGradeRecord represents a row from the matchgrade_player_grades table.
type PlayerGradeRecord struct {
	ImportID      int64
	MatchID       string
	PlayerKey     string
	PlayerID      *string
	TeamID        *string
	Side          string
	Name          string
	Role          string
	MinutesPlayed int32
	Overall10     *float64
	Overall100    *float64
	Delta         *float64
	ImpactScore   float64
	Unresolved    bool
	StatsJSON     string
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GradeRecords flattens a payload into one PlayerGradeRecord per player.
func GradeRecords(importID int64, payload *MatchPayload) ([]PlayerGradeRecord, error) {
	out := make([]PlayerGradeRecord, 0, len(payload.Players))
	for i := range payload.Players {
		p := &payload.Players[i]
		stats, err := json.Marshal(p.Stats)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal stats for %s: %w", p.Name, err)
		}
		rec := PlayerGradeRecord{
			ImportID:      importID,
			MatchID:       payload.MatchID,
			PlayerKey:     p.Key(i),
			PlayerID:      optional(p.PlayerID),
			TeamID:        optional(p.TeamID),
			Side:          string(p.Team),
			Name:          p.CanonicalName,
			Role:          string(p.RolePlayed.Primary),
			MinutesPlayed: int32(p.MinutesPlayed),
			Delta:         p.Delta,
			ImpactScore:   p.ImpactScore,
			Unresolved:    p.Unresolved,
			StatsJSON:     string(stats),
		}
		if p.GameGrade != nil {
			rec.Overall10, rec.Overall100 = p.GameGrade.Overall10, p.GameGrade.Overall100
		}
		out = append(out, rec)
	}
	return out, nil
}
