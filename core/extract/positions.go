package extract

import (
	"regexp"
	"strings"

	"github.com/huangsam/matchgrade/schema"
)

// positionWindow is how far before a name occurrence a position token may sit.
const positionWindow = 24

var positionTokenRe = regexp.MustCompile(`\b(` + positionAlternation + `)\b`)

// ExtractPositions collects, per player key, the position token nearest before
// every occurrence of the player's name. Surnames are only searched when no
// other player shares them.
func ExtractPositions(text string, players []schema.LineupEntry) map[string][]string {
	surnames := make(map[string]int)
	for _, p := range players {
		surnames[Surname(p.Name)]++
	}

	out := make(map[string][]string, len(players))
	for _, p := range players {
		var tokens []string
		full := occurrences(text, p.Name)
		hits := append([]int(nil), full...)
		if parts := strings.Fields(p.Name); len(parts) > 1 && surnames[Surname(p.Name)] == 1 {
			offset := len(p.Name) - len(parts[len(parts)-1])
			inFull := make(map[int]bool, len(full))
			for _, at := range full {
				inFull[at+offset] = true
			}
			for _, at := range occurrences(text, parts[len(parts)-1]) {
				if !inFull[at] {
					hits = append(hits, at)
				}
			}
		}
		for _, at := range hits {
			window := text[runeFloor(text, max(0, at-positionWindow)):at]
			if m := positionTokenRe.FindAllString(window, -1); len(m) > 0 {
				tokens = append(tokens, m[len(m)-1])
			}
		}
		if len(tokens) == 0 && p.Position != "" {
			tokens = []string{p.Position}
		}
		out[PlayerKey(p.Name, p.Number)] = tokens
	}
	return out
}

// MostFrequent returns the most common token. Ties go to the token that
// reached the count first.
func MostFrequent(tokens []string) string {
	counts := make(map[string]int, len(tokens))
	best, bestCount := "", 0
	for _, t := range tokens {
		counts[t]++
		if counts[t] > bestCount {
			best, bestCount = t, counts[t]
		}
	}
	return best
}
