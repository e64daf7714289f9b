package extract

import (
	"regexp"
	"unicode/utf8"
)

// Section markers of the report layout. Matching is case-insensitive.
const (
	markerStarting    = "starting lineup"
	markerSubstitutes = "substitutes"
	markerBench       = "bench"
	markerCoaches     = "coaches"
	markerCoach       = "coach"
	markerReport      = "match report"
	markerPlayerStats = "player stats"
	markerTeamStats   = "team stats"
)

// markerPatterns holds a case-insensitive pattern per marker. Offsets come
// from the original text, since lower-casing can change byte lengths.
var markerPatterns = map[string]*regexp.Regexp{}

func init() {
	for _, m := range []string{
		markerStarting, markerSubstitutes, markerBench, markerCoaches,
		markerCoach, markerReport, markerPlayerStats, markerTeamStats,
		keeperMarker,
	} {
		markerPatterns[m] = compileMarker(m)
	}
}

func compileMarker(marker string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(marker))
}

// findMarker returns the byte span of the first case-insensitive occurrence
// of marker in text, or nil.
func findMarker(text, marker string) []int {
	re, ok := markerPatterns[marker]
	if !ok {
		re = compileMarker(marker)
	}
	return re.FindStringIndex(text)
}

// section returns the text between the first start marker and the earliest of
// the end markers that follows it. The boolean is false when start is absent.
func section(text, start string, ends ...string) (string, bool) {
	loc := findMarker(text, start)
	if loc == nil {
		return "", false
	}
	from := loc[1]
	to := len(text)
	for _, end := range ends {
		if j := findMarker(text[from:], end); j != nil && from+j[0] < to {
			to = from + j[0]
		}
	}
	return text[from:to], true
}

// runeFloor moves i forward to the next rune boundary of s. Window starts
// computed by byte arithmetic go through it before slicing.
func runeFloor(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}

// runeCeil moves i back to the previous rune boundary of s.
func runeCeil(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
