package extract

import (
	"strconv"
	"strings"

	"github.com/huangsam/matchgrade/schema"
)

// Minute bounds.
const (
	DefaultMatchLength = 90
	maxPlausibleMinute = 130 // markers above this are page numbers or stat values
)

// tableMinute is one row minute from the player stats section.
type tableMinute struct {
	abbrev  string
	number  int
	minutes int
}

// MatchLength returns the largest stoppage-adjusted minute marker in text,
// never below 90.
func MatchLength(text string) int {
	length := DefaultMatchLength
	for _, m := range parseMinuteHints(text) {
		if m > length && m <= maxPlausibleMinute {
			length = m
		}
	}
	return length
}

// playerStatsMinutes reads per-player minutes from the dedicated player stats section.
func playerStatsMinutes(text string) []tableMinute {
	seg, ok := section(text, markerPlayerStats, markerTeamStats, keeperMarker)
	if !ok {
		return nil
	}
	var out []tableMinute
	for line := range strings.SplitSeq(seg, "\n") {
		m := statRowRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		minutes, _ := strconv.Atoi(m[3])
		if minutes > maxPlausibleMinute {
			continue
		}
		number, _ := strconv.Atoi(m[1])
		out = append(out, tableMinute{abbrev: AbbrevKey(m[2]), number: number, minutes: minutes})
	}
	return out
}

// lookupTableMinutes finds the authoritative minutes for a lineup entry. A
// jersey match wins; a bare name only counts when exactly one row carries it.
func lookupTableMinutes(rows []tableMinute, e schema.LineupEntry) (int, bool) {
	abbrev := AbbrevKey(e.Name)
	var byName []tableMinute
	for _, r := range rows {
		if r.abbrev != abbrev {
			continue
		}
		if r.number > 0 && r.number == e.Number {
			return r.minutes, true
		}
		if r.number == 0 {
			byName = append(byName, r)
		}
	}
	if len(byName) == 1 {
		return byName[0].minutes, true
	}
	return 0, false
}

func minOf(xs []int) int {
	lo := xs[0]
	for _, x := range xs[1:] {
		lo = min(lo, x)
	}
	return lo
}

func maxOf(xs []int) int {
	hi := xs[0]
	for _, x := range xs[1:] {
		hi = max(hi, x)
	}
	return hi
}

// ResolveMinutes converts lineup hints and match length into minutes played per
// player key. Minutes from the player stats section override the estimate.
func ResolveMinutes(text string, players []schema.LineupEntry) (schema.MinutesTable, int) {
	matchLength := MatchLength(text)
	rows := playerStatsMinutes(text)
	for _, r := range rows {
		matchLength = max(matchLength, r.minutes)
	}

	// Entry minutes of substitutes, by lineup index so a player never matches itself.
	entries := make(map[int]int)
	for i, p := range players {
		if !p.Starter && len(p.MinuteHints) > 0 {
			entries[i] = minOf(p.MinuteHints)
		}
	}

	table := make(schema.MinutesTable, len(players))
	for i, p := range players {
		total := 0
		switch {
		case p.Starter:
			total = matchLength
			if len(p.MinuteHints) > 0 {
				last := maxOf(p.MinuteHints)
				for j, entry := range entries {
					if j != i && entry == last {
						total = last
						break
					}
				}
			}
		case len(p.MinuteHints) > 0:
			total = matchLength - minOf(p.MinuteHints)
		}
		if m, ok := lookupTableMinutes(rows, p); ok {
			total = m
		}
		table[PlayerKey(p.Name, p.Number)] = schema.MinutesInfo{TotalMinutes: clamp(total, 0, matchLength)}
	}
	return table, matchLength
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
