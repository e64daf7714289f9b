package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/huangsam/matchgrade/schema"
)

// teamMetricKind selects the value parser for a team stats line.
type teamMetricKind int

const (
	teamSingle teamMetricKind = iota // "Label h a"
	teamRatio                        // "Label h1/h2 a1/a2"
	teamTime                         // "Label mm:ss mm:ss"
)

// teamMetric describes one team stats line.
type teamMetric struct {
	labels []string // letters-only, lower case
	kind   teamMetricKind
	keys   [2]schema.TeamStatKey // second key only for ratio lines
	max    float64               // a single value above this is a glued home/away pair
}

var teamMetrics = []teamMetric{
	{labels: []string{"xg", "expectedgoals"}, kind: teamSingle, keys: [2]schema.TeamStatKey{schema.TeamXG}, max: 10},
	{labels: []string{"possession", "ballpossession"}, kind: teamSingle, keys: [2]schema.TeamStatKey{schema.TeamPossession}, max: 100},
	{labels: []string{"shotsontarget", "shots"}, kind: teamRatio, keys: [2]schema.TeamStatKey{schema.TeamShots, schema.TeamShotsOnTarget}},
	{labels: []string{"corners"}, kind: teamSingle, keys: [2]schema.TeamStatKey{schema.TeamCorners}, max: 30},
	{labels: []string{"foulssuffered", "fouls"}, kind: teamRatio, keys: [2]schema.TeamStatKey{schema.TeamFouls, schema.TeamFoulsSuffered}},
	{labels: []string{"yellowcards"}, kind: teamSingle, keys: [2]schema.TeamStatKey{schema.TeamYellowCards}, max: 15},
	{labels: []string{"redcards"}, kind: teamSingle, keys: [2]schema.TeamStatKey{schema.TeamRedCards}, max: 5},
	{labels: []string{"passesaccurate", "passes"}, kind: teamRatio, keys: [2]schema.TeamStatKey{schema.TeamPasses, schema.TeamPassesAccurate}},
	{labels: []string{"longpasses", "longpassshare"}, kind: teamSingle, keys: [2]schema.TeamStatKey{schema.TeamLongPassPct}, max: 100},
	{labels: []string{"duelswon", "duels"}, kind: teamRatio, keys: [2]schema.TeamStatKey{schema.TeamDuels, schema.TeamDuelsWon}},
	{labels: []string{"ppda"}, kind: teamSingle, keys: [2]schema.TeamStatKey{schema.TeamPPDA}, max: 60},
	{labels: []string{"averagepossessionduration", "avgpossessionduration"}, kind: teamTime, keys: [2]schema.TeamStatKey{schema.TeamAvgPossessionSecs}},
	{labels: []string{"purepossessiontime", "purepossession"}, kind: teamTime, keys: [2]schema.TeamStatKey{schema.TeamPurePossessionSecs}},
	{labels: []string{"recoveries"}, kind: teamSingle, keys: [2]schema.TeamStatKey{schema.TeamRecoveries}, max: 150},
}

var (
	teamNumberRe = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	teamGluedRe  = regexp.MustCompile(`\d+(?:[.,]\d+)*`)
	teamRatioRe  = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
	teamDigitsRe = regexp.MustCompile(`\d+`)
	teamTimeRe   = regexp.MustCompile(`(\d{1,3}):(\d{2})`)
)

// letters reduces a line to its lower-case letters, the comparison form of a label.
func letters(line string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(line) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// findMetricLine returns the first line whose label matches. An exact label
// beats a prefix match, so "possession" never picks up "pure possession time".
func findMetricLine(lines []string, m teamMetric) (string, bool) {
	for _, label := range m.labels {
		for _, line := range lines {
			if letters(line) == label && teamDigitsRe.MatchString(line) {
				return line, true
			}
		}
	}
	for _, label := range m.labels {
		for _, line := range lines {
			if strings.HasPrefix(letters(line), label) && teamDigitsRe.MatchString(line) {
				return line, true
			}
		}
	}
	return "", false
}

// fuseSplit splits a digit run at its midpoint, undoing a glued "1414".
func fuseSplit(digits string) (float64, float64, bool) {
	if len(digits) < 2 || strings.ContainsAny(digits, ".,") {
		return 0, 0, false
	}
	mid := len(digits) / 2
	a, errA := strconv.Atoi(digits[:mid])
	b, errB := strconv.Atoi(digits[mid:])
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	return float64(a), float64(b), true
}

// teamNumbers returns the numbers on a line. A glued decimal pair such as
// "1.230.87" becomes "1.23" and "0.87": the first value takes as many
// decimals as the second.
func teamNumbers(line string) []string {
	var out []string
	for _, tok := range teamGluedRe.FindAllString(line, -1) {
		out = append(out, splitGluedDecimals(tok)...)
	}
	return out
}

func splitGluedDecimals(tok string) []string {
	parts := strings.FieldsFunc(tok, func(r rune) bool { return r == '.' || r == ',' })
	if len(parts) == 3 && len(parts[1]) > len(parts[2]) {
		cut := len(parts[2])
		sep1 := tok[len(parts[0])]
		sep2 := tok[len(parts[0])+1+len(parts[1])]
		return []string{
			parts[0] + string(sep1) + parts[1][:cut],
			parts[1][cut:] + string(sep2) + parts[2],
		}
	}
	return teamNumberRe.FindAllString(tok, -1)
}

// parseSinglePair reads the home and away values of a single-valued metric.
func parseSinglePair(line string, limit float64) (float64, float64, bool) {
	nums := teamNumbers(line)
	if len(nums) >= 2 {
		a, errA := parseDecimal(nums[0])
		b, errB := parseDecimal(nums[1])
		if errA == nil && errB == nil {
			return a, b, true
		}
		return 0, 0, false
	}
	if len(nums) == 1 {
		v, err := parseDecimal(nums[0])
		if err == nil && limit > 0 && v > limit {
			return fuseSplit(nums[0])
		}
	}
	return 0, 0, false
}

// parseRatioPair reads "h1/h2 a1/a2". When the slashes ran together the line
// has three numbers and the middle one holds h2 and a1.
func parseRatioPair(line string) ([2]float64, [2]float64, bool) {
	if m := teamRatioRe.FindAllStringSubmatch(line, 2); len(m) == 2 {
		var home, away [2]float64
		for i := range 2 {
			home[i], _ = strconv.ParseFloat(m[0][i+1], 64)
			away[i], _ = strconv.ParseFloat(m[1][i+1], 64)
		}
		return home, away, true
	}
	digits := teamDigitsRe.FindAllString(line, -1)
	if len(digits) == 3 {
		mid, midAway, ok := fuseSplit(digits[1])
		if !ok {
			return [2]float64{}, [2]float64{}, false
		}
		first, _ := strconv.ParseFloat(digits[0], 64)
		last, _ := strconv.ParseFloat(digits[2], 64)
		return [2]float64{first, mid}, [2]float64{midAway, last}, true
	}
	return [2]float64{}, [2]float64{}, false
}

// parseTimePair reads two mm:ss values as seconds.
func parseTimePair(line string) (float64, float64, bool) {
	m := teamTimeRe.FindAllStringSubmatch(line, 2)
	if len(m) != 2 {
		return 0, 0, false
	}
	secs := func(g []string) float64 {
		mm, _ := strconv.Atoi(g[1])
		ss, _ := strconv.Atoi(g[2])
		return float64(mm*60 + ss)
	}
	return secs(m[0]), secs(m[1]), true
}

// ExtractTeamStats reads aggregate home/away values. The team stats section is
// searched first; lines that cannot be parsed leave their keys unset.
func ExtractTeamStats(text string) schema.TeamStatsSnapshot {
	snap := schema.TeamStatsSnapshot{Home: schema.TeamSideStats{}, Away: schema.TeamSideStats{}}

	var scopes [][]string
	if seg, ok := section(text, markerTeamStats, keeperMarker, markerPlayerStats); ok {
		scopes = append(scopes, strings.Split(seg, "\n"))
	}
	scopes = append(scopes, strings.Split(text, "\n"))

	for _, m := range teamMetrics {
		for _, lines := range scopes {
			line, ok := findMetricLine(lines, m)
			if !ok {
				continue
			}
			if applyTeamMetric(&snap, m, line) {
				break
			}
		}
	}
	return snap
}

func applyTeamMetric(snap *schema.TeamStatsSnapshot, m teamMetric, line string) bool {
	switch m.kind {
	case teamRatio:
		home, away, ok := parseRatioPair(line)
		if !ok {
			return false
		}
		snap.Home[m.keys[0]], snap.Home[m.keys[1]] = home[0], home[1]
		snap.Away[m.keys[0]], snap.Away[m.keys[1]] = away[0], away[1]
		return true
	case teamTime:
		h, a, ok := parseTimePair(line)
		if !ok {
			return false
		}
		snap.Home[m.keys[0]], snap.Away[m.keys[0]] = h, a
		return true
	default:
		h, a, ok := parseSinglePair(line, m.max)
		if !ok {
			return false
		}
		snap.Home[m.keys[0]], snap.Away[m.keys[0]] = h, a
		return true
	}
}
