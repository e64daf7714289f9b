// Package extract turns normalized match-report text into lineups, minutes,
// positions and raw statistics.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	horizontalSpaceRe = regexp.MustCompile(`[ \t\f\v\x{00A0}\x{2007}\x{202F}]+`)
	anySpaceRe        = regexp.MustCompile(`\s+`)

	// Minute markers show up with typographic primes depending on the exporter.
	primeReplacer = strings.NewReplacer("\u2019", "'", "\u2032", "'", "\u00B4", "'")
)

// Normalize collapses whitespace in raw extracted text. Line structure is kept
// because several extractors work line by line, but blank lines are dropped.
func Normalize(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	raw = primeReplacer.Replace(raw)

	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(horizontalSpaceRe.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// Compact lower-cases s and strips every whitespace rune. Used for fuzzy label matching.
func Compact(s string) string {
	return strings.ToLower(anySpaceRe.ReplaceAllString(s, ""))
}

// StripDiacritics removes combining marks, so "Žaklina" becomes "Zaklina".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// FoldName produces the comparison form of a person name: no diacritics, lower
// case, no dots, single spaces.
func FoldName(name string) string {
	name = StripDiacritics(name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, ".", " ")
	return strings.TrimSpace(anySpaceRe.ReplaceAllString(name, " "))
}

// PlayerKey is the per-match key for a player. The jersey is part of the key so
// that players sharing an abbreviated name never collide.
func PlayerKey(name string, number int) string {
	folded := FoldName(name)
	if number <= 0 {
		return folded
	}
	return folded + "#" + strconv.Itoa(number)
}

// Surname returns the last name token of a folded name.
func Surname(name string) string {
	parts := strings.Fields(FoldName(name))
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// AbbrevKey reduces a name to "initial surname" form, so "Jane van Dijk" and
// "J. van Dijk" share a key.
func AbbrevKey(name string) string {
	parts := strings.Fields(FoldName(name))
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	first := []rune(parts[0])
	return string(first[0]) + " " + strings.Join(parts[1:], " ")
}
