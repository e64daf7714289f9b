package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/huangsam/matchgrade/schema"
)

// keeperMarker opens every goalkeeper block.
const keeperMarker = "goalkeeper in match"

// Window around a marker, in bytes.
const (
	keeperWindowBefore = 200
	keeperWindowAfter  = 600
)

var (
	keeperMarkerRe = regexp.MustCompile(`(?i)goalkeeper\s+in\s+match`)
	keeperPassesRe = regexp.MustCompile(`(?i)passes\s*/\s*accurate\s*[:\-]?\s*(\d+)\s*/\s*(\d+)`)
	keeperFieldRe  = regexp.MustCompile(`(?i)\b(shots against|conceded goals|reflex saves|saves|exits)\s*[:\-]?\s*(\d+)`)
	keeperXCGRe    = regexp.MustCompile(`(?i)\bxcg\s*[:\-]?\s*(\d+(?:[.,]\d+)?)`)
	capitalWordRe  = regexp.MustCompile(`\p{Lu}[\p{L}'\-]+`)
)

var keeperLabels = map[string]schema.StatKey{
	"shots against":  schema.StatShotsAgainst,
	"conceded goals": schema.StatConcededGoals,
	"reflex saves":   schema.StatReflexSaves,
	"saves":          schema.StatSaves,
	"exits":          schema.StatExits,
}

// KeeperCandidate is a player a keeper block may belong to.
type KeeperCandidate struct {
	Key  string
	Name string
}

type keeperBlock struct {
	before string
	after  string
	stats  schema.RawStats
}

// unglueTotal recovers a match total from per-half numbers printed without a
// separator: three digits keep the first, four or more keep the first two.
func unglueTotal(digits string) int {
	switch {
	case len(digits) == 3:
		digits = digits[:1]
	case len(digits) >= 4:
		digits = digits[:2]
	}
	n, _ := strconv.Atoi(digits)
	return n
}

// parseKeeperFields reads the labeled fields of one block. The first
// occurrence of a label wins.
func parseKeeperFields(s string) schema.RawStats {
	stats := make(schema.RawStats)
	if m := keeperPassesRe.FindStringSubmatch(s); m != nil {
		attempts, _ := strconv.Atoi(m[1])
		success, _ := strconv.Atoi(unglueSuccess(attempts, m[2]))
		if attempts <= maxTokenValue && success <= maxTokenValue {
			stats[schema.StatPasses] = schema.RawStatToken{Attempts: attempts, Success: &success}
		}
	}
	for _, m := range keeperFieldRe.FindAllStringSubmatch(s, -1) {
		key := keeperLabels[strings.ToLower(m[1])]
		if _, seen := stats[key]; seen {
			continue
		}
		stats[key] = schema.RawStatToken{Attempts: unglueTotal(m[2])}
	}
	if m := keeperXCGRe.FindStringSubmatch(s); m != nil {
		if x, err := parseDecimal(m[1]); err == nil {
			stats[schema.StatXCG] = schema.RawStatToken{XValue: &x}
		}
	}
	return stats
}

// keeperBlocks cuts the text into one block per marker occurrence. A block's
// fields never run into the next marker.
func keeperBlocks(text string) []keeperBlock {
	marks := keeperMarkerRe.FindAllStringIndex(text, -1)
	blocks := make([]keeperBlock, 0, len(marks))
	for n, m := range marks {
		lo := runeFloor(text, max(0, m[0]-keeperWindowBefore))
		if n > 0 {
			lo = max(lo, marks[n-1][1])
		}
		hi := runeCeil(text, min(len(text), m[1]+keeperWindowAfter))
		if n+1 < len(marks) {
			hi = min(hi, marks[n+1][0])
		}
		after := text[m[1]:hi]
		blocks = append(blocks, keeperBlock{
			before: text[lo:m[0]],
			after:  after,
			stats:  parseKeeperFields(after),
		})
	}
	return blocks
}

func isLetterAt(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	r := rune(s[i])
	return unicode.IsLetter(r) || s[i] >= 0x80
}

// occurrences lists the word-bounded byte offsets of needle in hay.
func occurrences(hay, needle string) []int {
	if needle == "" {
		return nil
	}
	var out []int
	for from := 0; ; {
		i := strings.Index(hay[from:], needle)
		if i < 0 {
			return out
		}
		at := from + i
		if !isLetterAt(hay, at-1) && !isLetterAt(hay, at+len(needle)) {
			out = append(out, at)
		}
		from = at + len(needle)
	}
}

// nearestOccurrence returns the distance from marker to the closest
// occurrence of needle in hay, or -1.
func nearestOccurrence(hay, needle string, marker int) int {
	best := -1
	for _, at := range occurrences(hay, needle) {
		d := marker - at
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// ownerStrict finds the candidate whose full name or surname sits closest to the marker.
func ownerStrict(b keeperBlock, cands []KeeperCandidate) (string, bool) {
	before := strings.ToLower(StripDiacritics(b.before))
	hay := before + keeperMarker + strings.ToLower(StripDiacritics(b.after))
	marker := len(before)
	best, bestKey := -1, ""
	for _, c := range cands {
		full := strings.ToLower(StripDiacritics(c.Name))
		d := nearestOccurrence(hay, full, marker)
		if s := nearestOccurrence(hay, Surname(c.Name), marker); s >= 0 && (d < 0 || s < d) {
			d = s
		}
		if d >= 0 && (best < 0 || d < best) {
			best, bestKey = d, c.Key
		}
	}
	return bestKey, best >= 0
}

// ownerLoose takes the capitalised word closest before the marker and
// resolves it by surname against every player in the match.
func ownerLoose(b keeperBlock, everyone []KeeperCandidate) (string, bool) {
	bySurname := make(map[string][]string)
	for _, c := range everyone {
		s := Surname(c.Name)
		bySurname[s] = append(bySurname[s], c.Key)
	}
	words := capitalWordRe.FindAllString(b.before, -1)
	for i := len(words) - 1; i >= 0; i-- {
		if keys := bySurname[FoldName(words[i])]; len(keys) == 1 {
			return keys[0], true
		}
	}
	return "", false
}

// ExtractKeeperStats assigns every goalkeeper block to a player key. Strict
// matching against keepers runs first, then loose matching against everyone,
// and leftover blocks go to keepers still without stats, in order.
func ExtractKeeperStats(text string, keepers, everyone []KeeperCandidate) map[string]schema.RawStats {
	blocks := keeperBlocks(text)
	out := make(map[string]schema.RawStats)
	assigned := make([]bool, len(blocks))

	for i, b := range blocks {
		if len(b.stats) == 0 {
			assigned[i] = true
			continue
		}
		if key, ok := ownerStrict(b, keepers); ok {
			if _, taken := out[key]; !taken {
				out[key] = b.stats
				assigned[i] = true
			}
		}
	}
	for i, b := range blocks {
		if assigned[i] {
			continue
		}
		if key, ok := ownerLoose(b, everyone); ok {
			if _, taken := out[key]; !taken {
				out[key] = b.stats
				assigned[i] = true
			}
		}
	}
	for i, b := range blocks {
		if assigned[i] {
			continue
		}
		for _, k := range keepers {
			if _, taken := out[k.Key]; !taken {
				out[k.Key] = b.stats
				assigned[i] = true
				break
			}
		}
	}
	return out
}
