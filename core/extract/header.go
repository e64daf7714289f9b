package extract

import (
	"regexp"
	"strings"
)

// headerLines bounds the report header.
const headerLines = 15

var (
	dottedDateRe = regexp.MustCompile(`\b(\d{2})\.(\d{2})\.(\d{4})\b`)
	isoDateRe    = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	roundRe      = regexp.MustCompile(`(?i)\b(?:round|matchday)\s*(\d{1,2})\b`)
	slugStripRe  = regexp.MustCompile(`[^a-z0-9]+`)
)

func header(text string) string {
	lines := strings.SplitN(text, "\n", headerLines+1)
	if len(lines) > headerLines {
		lines = lines[:headerLines]
	}
	return strings.Join(lines, "\n")
}

// ExtractDate returns the match date from the report header as yyyy-mm-dd.
func ExtractDate(text string) string {
	h := header(text)
	if m := isoDateRe.FindStringSubmatch(h); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3]
	}
	if m := dottedDateRe.FindStringSubmatch(h); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1]
	}
	return ""
}

// ExtractRound returns the round number from the report header.
func ExtractRound(text string) string {
	if m := roundRe.FindStringSubmatch(header(text)); m != nil {
		return strings.TrimLeft(m[1], "0")
	}
	return ""
}

// Slug folds s into lower-case words joined by dashes.
func Slug(s string) string {
	return strings.Trim(slugStripRe.ReplaceAllString(FoldName(s), "-"), "-")
}

// MatchID builds a stable identifier from date and team slugs.
func MatchID(date, homeTeamID, awayTeamID string) string {
	if date == "" {
		date = "undated"
	}
	return date + "-" + Slug(homeTeamID) + "-" + Slug(awayTeamID)
}
