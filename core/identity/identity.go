// Package identity matches names parsed from a report against the roster.
package identity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/huangsam/matchgrade/core/extract"
	"github.com/huangsam/matchgrade/schema"
)

// Outcome explains why a player query resolved the way it did.
type Outcome string

// Resolution outcomes.
const (
	Resolved  Outcome = "resolved"
	NotFound  Outcome = "not_found"
	WrongTeam Outcome = "wrong_team"
	Ambiguous Outcome = "ambiguous"
)

// Query is one player name to resolve.
type Query struct {
	Name    string
	Number  int
	TeamIDs []string // the two match teams; empty disables narrowing
}

// Match is the result of resolving a Query.
type Match struct {
	Player   schema.RosterPlayer
	Strategy string
	Outcome  Outcome
}

// OK reports whether the query resolved to a roster player.
func (m Match) OK() bool {
	return m.Outcome == Resolved
}

// indexedPlayer carries the precomputed comparison forms of a roster player.
type indexedPlayer struct {
	schema.RosterPlayer
	folded  string
	abbr    string
	abbrev  string
	surname string
}

// Resolver resolves players and teams against one immutable roster snapshot.
type Resolver struct {
	players    []indexedPlayer
	teams      []schema.RosterTeam
	aliases    schema.AliasConfig
	strategies []Strategy
}

// NewResolver indexes the roster and installs the default strategy order.
func NewResolver(roster schema.RosterSnapshot, aliases schema.AliasConfig) *Resolver {
	r := &Resolver{teams: roster.Teams, aliases: foldAliases(aliases)}
	r.players = make([]indexedPlayer, 0, len(roster.Players))
	for _, p := range roster.Players {
		abbr := p.AbbrName
		if abbr == "" {
			abbr = p.Name
		}
		r.players = append(r.players, indexedPlayer{
			RosterPlayer: p,
			folded:       extract.FoldName(p.Name),
			abbr:         extract.FoldName(abbr),
			abbrev:       extract.AbbrevKey(p.Name),
			surname:      extract.Surname(p.Name),
		})
	}
	r.strategies = DefaultStrategies()
	return r
}

// foldAliases folds alias keys once so lookups can use folded names directly.
func foldAliases(a schema.AliasConfig) schema.AliasConfig {
	out := schema.AliasConfig{
		Players:  make(map[string]string, len(a.Players)),
		Teams:    make(map[string]string, len(a.Teams)),
		Siblings: a.Siblings,
	}
	for k, v := range a.Players {
		out.Players[extract.FoldName(k)] = v
	}
	for k, v := range a.Teams {
		out.Teams[foldTeam(k)] = v
	}
	return out
}

func inTeams(p indexedPlayer, teamIDs []string) bool {
	for _, id := range teamIDs {
		if p.TeamID == id {
			return true
		}
	}
	return false
}

// narrow applies the team filter and jersey tie-break to a candidate set.
func narrow(cands []indexedPlayer, q Query) ([]indexedPlayer, Outcome) {
	if len(q.TeamIDs) > 0 {
		var kept []indexedPlayer
		for _, c := range cands {
			if inTeams(c, q.TeamIDs) {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			return nil, WrongTeam
		}
		cands = kept
	}
	if len(cands) == 1 {
		return cands, Resolved
	}
	if q.Number > 0 {
		var byNumber []indexedPlayer
		for _, c := range cands {
			if c.Number == q.Number {
				byNumber = append(byNumber, c)
			}
		}
		if len(byNumber) == 1 {
			return byNumber, Resolved
		}
	}
	return cands, Ambiguous
}

// ResolvePlayer runs the strategies in order and stops at the first one that
// resolves or is ambiguous. Candidates that only exist on other teams do not
// stop the search; WrongTeam is reported only when no later step resolves.
func (r *Resolver) ResolvePlayer(q Query) Match {
	var wrongTeam *Match
	for _, s := range r.strategies {
		cands := s.Find(r, q)
		if len(cands) == 0 {
			continue
		}
		kept, outcome := narrow(cands, q)
		switch outcome {
		case Resolved:
			return Match{Player: kept[0].RosterPlayer, Strategy: s.Name, Outcome: Resolved}
		case WrongTeam:
			if wrongTeam == nil {
				wrongTeam = &Match{Strategy: s.Name, Outcome: WrongTeam}
			}
		default:
			return Match{Strategy: s.Name, Outcome: outcome}
		}
	}
	if wrongTeam != nil {
		return *wrongTeam
	}
	return Match{Outcome: NotFound}
}

var (
	camelRe     = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)
	teamStripRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// foldTeam is the comparison form of a team name: merged words split apart,
// no diacritics, lower case, alphanumerics only.
func foldTeam(name string) string {
	name = camelRe.ReplaceAllString(name, "$1 $2")
	name = strings.ToLower(extract.StripDiacritics(name))
	return strings.Trim(teamStripRe.ReplaceAllString(name, "-"), "-")
}

// collapseRepeats drops doubled letters, so OCR artifacts like "Dinammo" match.
func collapseRepeats(s string) string {
	var b strings.Builder
	var prev rune
	for i, c := range s {
		if i > 0 && c == prev {
			continue
		}
		b.WriteRune(c)
		prev = c
	}
	return b.String()
}

// ResolveTeam matches a parsed team name against the roster teams, first by
// slug and then by slug with repeated letters collapsed.
func (r *Resolver) ResolveTeam(name string) (schema.RosterTeam, bool) {
	key := foldTeam(name)
	if canonical, ok := r.aliases.Teams[key]; ok {
		key = foldTeam(canonical)
	}
	forms := func(t schema.RosterTeam) []string {
		out := []string{foldTeam(t.Name)}
		if t.Slug != "" {
			out = append(out, foldTeam(t.Slug))
		}
		return out
	}
	for _, t := range r.teams {
		for _, f := range forms(t) {
			if f == key {
				return t, true
			}
		}
	}
	loose := collapseRepeats(key)
	for _, t := range r.teams {
		for _, f := range forms(t) {
			if collapseRepeats(f) == loose {
				return t, true
			}
		}
	}
	return schema.RosterTeam{}, false
}

// ResolveTeams resolves both sides. Failing either side fails the import.
func (r *Resolver) ResolveTeams(home, away string) (schema.RosterTeam, schema.RosterTeam, error) {
	h, ok := r.ResolveTeam(home)
	if !ok {
		return schema.RosterTeam{}, schema.RosterTeam{}, fmt.Errorf("home team %q: %w", home, schema.ErrTeamUnresolved)
	}
	a, ok := r.ResolveTeam(away)
	if !ok {
		return schema.RosterTeam{}, schema.RosterTeam{}, fmt.Errorf("away team %q: %w", away, schema.ErrTeamUnresolved)
	}
	return h, a, nil
}
