// Package schema has models, constants and grading rules for all parts of matchgrade.
package schema

import (
	"errors"
	"strconv"
)

// Fatal import errors. Anything else during extraction degrades instead of failing.
var (
	ErrFilenameFormat = errors.New("filename does not match '<Home> - <Away> <h>-<a>'")
	ErrTeamUnresolved = errors.New("team could not be resolved against the roster")
)

// Document is the text of one match report plus the name it was uploaded under.
type Document struct {
	Filename string
	Text     string
}

// MatchInfo is what the filename tells us about a match.
type MatchInfo struct {
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	Score     string `json:"score"`
	HomeGoals int    `json:"homeGoals"`
	AwayGoals int    `json:"awayGoals"`
}

// LineupEntry is one row of the lineup section.
type LineupEntry struct {
	Name        string `json:"name"`
	Number      int    `json:"number"`
	Position    string `json:"position"`
	Starter     bool   `json:"starter"`
	MinuteHints []int  `json:"minuteHints,omitempty"`
}

// MinutesInfo holds the resolved minutes for one player.
type MinutesInfo struct {
	TotalMinutes int `json:"totalMinutes"`
}

// MinutesTable maps a player key to its resolved minutes.
type MinutesTable map[string]MinutesInfo

// RawStatToken is a parsed "N/M" cell. Left is attempts, right is success.
// A decimal right-hand side is carried as XValue (xG/xA) instead of Success.
type RawStatToken struct {
	Attempts int      `json:"attempts"`
	Success  *int     `json:"success,omitempty"`
	XValue   *float64 `json:"xValue,omitempty"`
}

// RawStats maps raw column keys to their parsed tokens.
type RawStats map[StatKey]RawStatToken

// FlatStats holds named counting fields. A missing key means "not reported".
type FlatStats map[StatKey]float64

// Has reports whether the stat was reported at all.
func (f FlatStats) Has(key StatKey) bool {
	_, ok := f[key]
	return ok
}

// Get returns the stat value, or zero when absent.
func (f FlatStats) Get(key StatKey) float64 {
	return f[key]
}

// DerivedMetrics holds per-90 rates and ratios. A missing key means null.
type DerivedMetrics map[MetricKey]float64

// RoleResult is the output of role detection.
type RoleResult struct {
	Primary    Role    `json:"primaryRole"`
	Secondary  Role    `json:"secondaryRole,omitempty"`
	Confidence float64 `json:"roleConfidence"`
}

// GradeResult is a player grade. Outfield grades carry Overall100 and Breakdown,
// keeper grades carry Confidence.
type GradeResult struct {
	Overall10  *float64              `json:"overall10"`
	Overall100 *float64              `json:"overall100,omitempty"`
	Breakdown  map[MetricKey]float64 `json:"breakdown,omitempty"`
	Confidence *float64              `json:"confidence,omitempty"`
}

// Score10 returns overall10 or zero when the grade is empty.
func (g *GradeResult) Score10() float64 {
	if g == nil || g.Overall10 == nil {
		return 0
	}
	return *g.Overall10
}

// PlayerRecord is the per-player result of processing a match.
type PlayerRecord struct {
	Name          string         `json:"name"`
	CanonicalName string         `json:"canonicalName"`
	PlayerID      string         `json:"playerId,omitempty"`
	TeamID        string         `json:"teamId,omitempty"`
	Team          Side           `json:"team"`
	Unresolved    bool           `json:"unresolved,omitempty"`
	Number        int            `json:"number"`
	Position      string         `json:"position"`
	Positions     []string       `json:"positions,omitempty"`
	Starter       bool           `json:"starter"`
	MinutesPlayed int            `json:"minutesPlayed"`
	RawStats      RawStats       `json:"rawStats,omitempty"`
	Stats         FlatStats      `json:"stats"`
	RolePlayed    RoleResult     `json:"rolePlayed"`
	Derived       DerivedMetrics `json:"derived"`
	GameGrade     *GradeResult   `json:"gameGrade"`
	Delta         *float64       `json:"delta"`
	ImpactScore   float64        `json:"impactScore"`
}

// Key is the record's uniqueness key: canonical name, side and jersey (or index).
func (p *PlayerRecord) Key(index int) string {
	slot := p.Number
	if slot == 0 {
		slot = -(index + 1)
	}
	return p.CanonicalName + "|" + string(p.Team) + "|" + strconv.Itoa(slot)
}

// TeamSideStats maps team statistic keys to values. A missing key means unset.
type TeamSideStats map[TeamStatKey]float64

// TeamStatsSnapshot holds aggregate home/away statistics.
type TeamStatsSnapshot struct {
	Home TeamSideStats `json:"home"`
	Away TeamSideStats `json:"away"`
}

// RosterPlayer is a canonical player identity from the roster store.
type RosterPlayer struct {
	ID       int64  `json:"id"`
	PlayerID string `json:"playerID"`
	TeamID   string `json:"teamID"`
	Name     string `json:"name"`
	AbbrName string `json:"abbrName"`
	Number   int    `json:"number"`
}

// RosterTeam is a canonical team identity from the roster store.
type RosterTeam struct {
	ID     int64  `json:"id"`
	TeamID string `json:"teamID"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
}

// RosterSnapshot is an immutable view of the roster used for one import.
type RosterSnapshot struct {
	Players []RosterPlayer `json:"players"`
	Teams   []RosterTeam   `json:"teams"`
}

// PerformerSummary is the best-performer entry for one side.
type PerformerSummary struct {
	PlayerID      string              `json:"playerId"`
	Name          string              `json:"name"`
	Role          Role                `json:"role"`
	MinutesPlayed int                 `json:"minutesPlayed"`
	GameGrade     *GradeResult        `json:"gameGrade"`
	Delta         *float64            `json:"delta"`
	ImpactScore   float64             `json:"impactScore"`
	KeyStats      map[StatKey]float64 `json:"keyStats"`
}

// BestPerformers holds one summary per side, either of which may be nil.
type BestPerformers struct {
	Home *PerformerSummary `json:"home"`
	Away *PerformerSummary `json:"away"`
}

// MatchPayload is the finalized output for one imported report.
type MatchPayload struct {
	MatchID        string            `json:"matchId"`
	Date           string            `json:"date,omitempty"`
	Round          string            `json:"round,omitempty"`
	HomeTeam       string            `json:"homeTeam"`
	AwayTeam       string            `json:"awayTeam"`
	HomeTeamID     string            `json:"homeTeamId"`
	AwayTeamID     string            `json:"awayTeamId"`
	Score          string            `json:"score"`
	HomeGoals      int               `json:"homeGoals"`
	AwayGoals      int               `json:"awayGoals"`
	TeamStats      TeamStatsSnapshot `json:"teamStats"`
	Players        []PlayerRecord    `json:"players"`
	BestPerformers BestPerformers    `json:"bestPerformers"`
}

// ImportResult pairs a processed payload with its source path.
type ImportResult struct {
	SourcePath string
	Payload    *MatchPayload
	Err        error
}
