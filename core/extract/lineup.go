package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/huangsam/matchgrade/schema"
)

// LineupOptions tunes the lineup heuristics.
type LineupOptions struct {
	// StarterCap is the number of starter rows kept across both sides.
	StarterCap int
	// ShortHintMax demotes a starter whose only minute hint is at or below it.
	ShortHintMax int
}

// DefaultLineupOptions returns the thresholds tuned for the supported report layout.
func DefaultLineupOptions() LineupOptions {
	return LineupOptions{StarterCap: 22, ShortHintMax: 30}
}

const namePattern = `[\p{L}][\p{L}'.\-]*(?:\s[\p{L}][\p{L}'.\-]*)*`

var (
	positionAlternation = buildPositionAlternation()
	lineupRowRe         = regexp.MustCompile(`^(` + positionAlternation + `)\s+(\d{1,2})\s+(` + namePattern + `)((?:\s+\d{1,3}(?:\+\d{1,2})?')*)\s*$`)
	benchRowRe          = regexp.MustCompile(`^(?:(?:` + positionAlternation + `)\s+)?(\d{1,2})\s+(` + namePattern + `)`)
	minuteMarkerRe      = regexp.MustCompile(`(\d{1,3})(?:\+(\d{1,2}))?'`)
)

// buildPositionAlternation lists position tokens longest first so "LCMF" wins over "CMF".
func buildPositionAlternation() string {
	tokens := make([]string, 0, len(schema.PositionRoles))
	for tok := range schema.PositionRoles {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})
	return strings.Join(tokens, "|")
}

// parseMinuteHints reads every minute marker in s as base+stoppage.
func parseMinuteHints(s string) []int {
	var hints []int
	for _, m := range minuteMarkerRe.FindAllStringSubmatch(s, -1) {
		base, _ := strconv.Atoi(m[1])
		if m[2] != "" {
			extra, _ := strconv.Atoi(m[2])
			base += extra
		}
		hints = append(hints, base)
	}
	return hints
}

type lineupKey struct {
	name   string
	number int
}

func keyOf(name string, number int) lineupKey {
	return lineupKey{name: FoldName(name), number: number}
}

// parseLineupRows matches lineup rows line by line.
func parseLineupRows(segment string, starter bool) []schema.LineupEntry {
	var out []schema.LineupEntry
	for line := range strings.SplitSeq(segment, "\n") {
		m := lineupRowRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		number, _ := strconv.Atoi(m[2])
		out = append(out, schema.LineupEntry{
			Name:        strings.TrimSpace(m[3]),
			Number:      number,
			Position:    m[1],
			Starter:     starter,
			MinuteHints: parseMinuteHints(m[4]),
		})
	}
	return out
}

// parseBench reads the bench list. Bench rows carry no minute hints.
func parseBench(segment string) map[lineupKey]struct{} {
	bench := make(map[lineupKey]struct{})
	for line := range strings.SplitSeq(segment, "\n") {
		m := benchRowRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		number, _ := strconv.Atoi(m[1])
		bench[keyOf(m[2], number)] = struct{}{}
	}
	return bench
}

// ExtractLineup returns starters followed by substitutes in input order.
// Without a starting-lineup marker the whole text (up to the substitutes
// section, if any) is scanned instead.
func ExtractLineup(text string, opts LineupOptions) []schema.LineupEntry {
	if opts.StarterCap <= 0 {
		opts = DefaultLineupOptions()
	}

	startSeg, ok := section(text, markerStarting, markerSubstitutes, markerBench, markerCoach, markerReport)
	if !ok {
		startSeg = text
		if loc := findMarker(text, markerSubstitutes); loc != nil {
			startSeg = text[:loc[0]]
		}
	}
	subSeg, _ := section(text, markerSubstitutes, markerBench, markerCoach, markerReport)
	benchSeg, _ := section(text, markerBench, markerCoach, markerReport, markerSubstitutes)

	seen := make(map[lineupKey]struct{})
	var entries []schema.LineupEntry
	starters := 0
	for _, e := range parseLineupRows(startSeg, true) {
		k := keyOf(e.Name, e.Number)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if starters >= opts.StarterCap {
			e.Starter = false
		} else {
			starters++
		}
		entries = append(entries, e)
	}
	for _, e := range parseLineupRows(subSeg, false) {
		k := keyOf(e.Name, e.Number)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		entries = append(entries, e)
	}

	bench := parseBench(benchSeg)
	if len(bench) >= len(entries) {
		// A bench list this large is the page, not the bench.
		bench = nil
	}

	for i := range entries {
		e := &entries[i]
		if !e.Starter {
			continue
		}
		if _, onBench := bench[keyOf(e.Name, e.Number)]; onBench {
			e.Starter = false
			continue
		}
		if len(e.MinuteHints) == 1 && e.MinuteHints[0] <= opts.ShortHintMax {
			e.Starter = false
		}
	}
	return entries
}
