package core

import (
	"math"

	"github.com/huangsam/matchgrade/core/algo"
	"github.com/huangsam/matchgrade/core/extract"
	"github.com/huangsam/matchgrade/core/identity"
	"github.com/huangsam/matchgrade/schema"
)

// PlayerRecordBuilder builds one player record from the extracted match data.
type PlayerRecordBuilder struct {
	opts   *ProcessOptions
	entry  schema.LineupEntry
	key    string
	result *schema.PlayerRecord
	match  identity.Match
}

// NewPlayerRecordBuilder is the starting point for building a player record.
func NewPlayerRecordBuilder(opts *ProcessOptions, entry schema.LineupEntry) *PlayerRecordBuilder {
	return &PlayerRecordBuilder{
		opts:  opts,
		entry: entry,
		key:   extract.PlayerKey(entry.Name, entry.Number),
		result: &schema.PlayerRecord{
			Name:          entry.Name,
			CanonicalName: entry.Name,
			Number:        entry.Number,
			Position:      entry.Position,
			Starter:       entry.Starter,
		},
	}
}

// ResolveIdentity matches the player against the roster and infers the side
// from the roster team. Unresolved players keep their parsed name and no side.
func (b *PlayerRecordBuilder) ResolveIdentity(r *identity.Resolver, home, away schema.RosterTeam) *PlayerRecordBuilder {
	b.match = r.ResolvePlayer(identity.Query{
		Name:    b.entry.Name,
		Number:  b.entry.Number,
		TeamIDs: []string{home.TeamID, away.TeamID},
	})
	if !b.match.OK() {
		b.result.Unresolved = true
		return b
	}
	p := b.match.Player
	b.result.PlayerID = p.PlayerID
	b.result.TeamID = p.TeamID
	b.result.CanonicalName = p.Name
	switch p.TeamID {
	case home.TeamID:
		b.result.Team = schema.HomeSide
	case away.TeamID:
		b.result.Team = schema.AwaySide
	}
	return b
}

// ApplyMinutes copies the resolved minutes played.
func (b *PlayerRecordBuilder) ApplyMinutes(minutes schema.MinutesTable) *PlayerRecordBuilder {
	b.result.MinutesPlayed = minutes[b.key].TotalMinutes
	return b
}

// ApplyPositions stores the raw position tokens and the most frequent one.
func (b *PlayerRecordBuilder) ApplyPositions(positions map[string][]string) *PlayerRecordBuilder {
	tokens := positions[b.key]
	b.result.Positions = tokens
	if top := extract.MostFrequent(tokens); top != "" {
		b.result.Position = top
	}
	return b
}

// ApplyStats merges field and keeper rows and flattens them.
func (b *PlayerRecordBuilder) ApplyStats(field, keeper map[string]schema.RawStats) *PlayerRecordBuilder {
	raw := extract.MergeRaw(nil, field[b.key])
	raw = extract.MergeRaw(raw, keeper[b.key])
	if len(raw) > 0 {
		b.result.RawStats = raw
	}
	b.result.Stats = extract.Flatten(raw)
	return b
}

// DetectRole maps the position tokens to a functional role. A player with a
// keeper block is a goalkeeper whatever the tokens say.
func (b *PlayerRecordBuilder) DetectRole(hasKeeperBlock bool) *PlayerRecordBuilder {
	fallback := algo.FallbackRole(b.entry.Position)
	b.result.RolePlayed = algo.DetectRole(b.result.Positions, fallback)
	if hasKeeperBlock && b.result.RolePlayed.Primary != schema.RoleGoalkeeper {
		b.result.RolePlayed = schema.RoleResult{
			Primary:    schema.RoleGoalkeeper,
			Secondary:  b.result.RolePlayed.Primary,
			Confidence: b.result.RolePlayed.Confidence,
		}
	}
	return b
}

// CalculateDerivedMetrics computes per-90 rates and ratios.
func (b *PlayerRecordBuilder) CalculateDerivedMetrics() *PlayerRecordBuilder {
	b.result.Derived = algo.ComputeDerived(b.result.Stats, b.result.MinutesPlayed, b.result.RolePlayed.Primary)
	return b
}

// Eligible reports whether the record may be graded: resolved, with stats,
// and past the role's minimum minutes.
func (b *PlayerRecordBuilder) Eligible() bool {
	r := b.result
	if r.Unresolved || len(r.Stats) == 0 {
		return false
	}
	return r.MinutesPlayed >= schema.MinimumMinutes(r.RolePlayed.Primary, b.opts.MinMinutesOutfield, b.opts.MinMinutesKeeper)
}

// CalculateGrade grades eligible players and computes the delta against the
// season baseline.
func (b *PlayerRecordBuilder) CalculateGrade(baselines map[string]float64) *PlayerRecordBuilder {
	if !b.Eligible() {
		return b
	}
	r := b.result
	if r.RolePlayed.Primary == schema.RoleGoalkeeper {
		r.GameGrade = algo.GradeKeeper(r.Derived, r.MinutesPlayed, b.opts.KeeperWeights)
	} else {
		r.GameGrade = algo.GradeOutfield(r.Stats, r.Derived, algo.RulesFor(r.RolePlayed.Primary, b.opts.Weights))
	}
	if r.GameGrade == nil || r.GameGrade.Overall10 == nil {
		return b
	}
	if base, ok := baselines[r.PlayerID]; ok {
		delta := math.Round((*r.GameGrade.Overall10-base)*10) / 10
		r.Delta = &delta
	}
	return b
}

// CalculateImpact computes the ranking-only impact score.
func (b *PlayerRecordBuilder) CalculateImpact() *PlayerRecordBuilder {
	b.result.ImpactScore = algo.ImpactScore(b.result.Stats, b.result.RolePlayed.Primary)
	return b
}

// Build finalizes the construction and returns the completed record.
func (b *PlayerRecordBuilder) Build() schema.PlayerRecord {
	return *b.result
}
