package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/huangsam/matchgrade/schema"
)

var (
	// statRowRe matches "[jersey] J. Surname 87' <tail>".
	statRowRe = regexp.MustCompile(`^(?:(\d{1,2})\s+)?(\p{Lu}\.\s?[\p{L}][\p{L}'\-]*(?:\s[\p{L}][\p{L}'\-]*)*)\s+(\d{1,3})'\s*(.*)$`)

	// continuationRe matches a wrapped tail line: numbers, ratios, dashes and percents only.
	continuationRe = regexp.MustCompile(`^[\d\s/.,%\-–—]+$`)
)

// Header labels, compacted.
const (
	anchorGoals   = "goals/xg"
	anchorAssists = "assists/xa"
	anchorWindow  = 3 // header lines that may hold the two labels
)

// Candidate is a lineup player a table row may belong to.
type Candidate struct {
	Key     string
	Number  int
	Minutes int
}

// NameIndex maps an abbreviated name key to the lineup players sharing it.
type NameIndex map[string][]Candidate

// BuildNameIndex indexes lineup players by abbreviated name, jersey order.
func BuildNameIndex(players []schema.LineupEntry, minutes schema.MinutesTable) NameIndex {
	idx := make(NameIndex)
	for _, p := range players {
		key := PlayerKey(p.Name, p.Number)
		abbrev := AbbrevKey(p.Name)
		idx[abbrev] = append(idx[abbrev], Candidate{Key: key, Number: p.Number, Minutes: minutes[key].TotalMinutes})
	}
	for k := range idx {
		sort.SliceStable(idx[k], func(i, j int) bool { return idx[k][i].Number < idx[k][j].Number })
	}
	return idx
}

// TableRow is one parsed row of the field-player table.
type TableRow struct {
	Jersey  int
	Name    string
	Minutes int
	Tail    string
	Line    int
}

// Raw parses the row tail into column tokens.
func (r TableRow) Raw() schema.RawStats {
	return TailToRawStats(r.Tail)
}

func isStatRow(line string) bool {
	return statRowRe.MatchString(line)
}

func isContinuation(line string) bool {
	return continuationRe.MatchString(line) && strings.ContainsAny(line, "0123456789-–—")
}

// anchor spans the header lines holding the column labels.
type anchor struct {
	first, last int
}

func hasLabels(lines []string) bool {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(Compact(line))
	}
	c := b.String()
	return strings.Contains(c, anchorGoals) && strings.Contains(c, anchorAssists)
}

// findAnchors locates every header window containing both column labels. The
// window is shrunk from the left so it never swallows a row above the header.
func findAnchors(lines []string) []anchor {
	var anchors []anchor
	for i := 0; i < len(lines); i++ {
		for j := i; j < len(lines) && j < i+anchorWindow; j++ {
			if !hasLabels(lines[i : j+1]) {
				continue
			}
			first := i
			for first < j && hasLabels(lines[first+1:j+1]) {
				first++
			}
			anchors = append(anchors, anchor{first: first, last: j})
			i = j
			break
		}
	}
	return anchors
}

// rowsAfter collects the block following a header. Up to anchorWindow extra
// header lines may sit between the labels and the first row.
func rowsAfter(lines []string, a anchor) []int {
	var block []int
	skipped := 0
	for i := a.last + 1; i < len(lines); i++ {
		switch {
		case isStatRow(lines[i]):
			block = append(block, i)
		case len(block) > 0 && isContinuation(lines[i]):
			block = append(block, i)
		case len(block) == 0 && skipped < anchorWindow:
			skipped++
		default:
			return block
		}
	}
	return block
}

// rowsBefore collects the block directly above a header, for layouts that
// repeat the header as a footer.
func rowsBefore(lines []string, a anchor) []int {
	var block []int
	for i := a.first - 1; i >= 0; i-- {
		if !isStatRow(lines[i]) && !isContinuation(lines[i]) {
			break
		}
		block = append(block, i)
	}
	sort.Ints(block)
	// A leading continuation line belongs to a row outside the block.
	for len(block) > 0 && !isStatRow(lines[block[0]]) {
		block = block[1:]
	}
	return block
}

// collectBlocks gathers the contiguous row blocks around every header anchor.
// Each block holds line indexes in document order; a line is used at most once.
func collectBlocks(lines []string, anchors []anchor) [][]int {
	used := make(map[int]bool)
	var blocks [][]int
	take := func(block []int) {
		var kept []int
		for _, i := range block {
			if !used[i] {
				used[i] = true
				kept = append(kept, i)
			}
		}
		if len(kept) > 0 {
			blocks = append(blocks, kept)
		}
	}
	for _, a := range anchors {
		take(rowsBefore(lines, a))
		take(rowsAfter(lines, a))
	}
	return blocks
}

// parseBlock turns block lines into rows, folding continuation lines into the
// preceding row's tail.
func parseBlock(lines []string, block []int) []TableRow {
	var rows []TableRow
	for _, i := range block {
		line := lines[i]
		if m := statRowRe.FindStringSubmatch(line); m != nil {
			jersey, _ := strconv.Atoi(m[1])
			minutes, _ := strconv.Atoi(m[3])
			rows = append(rows, TableRow{Jersey: jersey, Name: strings.TrimSpace(m[2]), Minutes: minutes, Tail: m[4], Line: i})
			continue
		}
		if len(rows) > 0 {
			last := &rows[len(rows)-1]
			last.Tail = strings.TrimSpace(last.Tail + " " + line)
		}
	}
	return rows
}

// ExtractTableRows finds every field-player table row, grouped by block.
func ExtractTableRows(text string) [][]TableRow {
	lines := strings.Split(text, "\n")
	var out [][]TableRow
	for _, block := range collectBlocks(lines, findAnchors(lines)) {
		if rows := parseBlock(lines, block); len(rows) > 0 {
			out = append(out, rows)
		}
	}
	return out
}

// candidatesFor returns lineup candidates for a row name, falling back to a
// unique surname match when the abbreviated key is unknown.
func candidatesFor(idx NameIndex, name string) []Candidate {
	if c := idx[AbbrevKey(name)]; len(c) > 0 {
		return c
	}
	surname := Surname(name)
	var found []Candidate
	for abbrev, c := range idx {
		if abbrev == surname || strings.HasSuffix(abbrev, " "+surname) {
			found = append(found, c...)
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].Key < found[j].Key })
	return found
}

// assignRow picks the player key for a row. Order: jersey, single candidate,
// minutes match, next unused jersey, any candidate.
func assignRow(row TableRow, idx NameIndex, used map[string]bool) string {
	cands := candidatesFor(idx, row.Name)
	if len(cands) == 0 {
		return PlayerKey(row.Name, row.Jersey)
	}
	if row.Jersey > 0 {
		for _, c := range cands {
			if c.Number == row.Jersey {
				return c.Key
			}
		}
	}
	if len(cands) == 1 {
		return cands[0].Key
	}
	for _, c := range cands {
		if !used[c.Key] && c.Minutes == row.Minutes {
			return c.Key
		}
	}
	for _, c := range cands {
		if !used[c.Key] {
			return c.Key
		}
	}
	return cands[0].Key
}

// Richness scores how complete and plausible a row's stats look. Rows that
// were double counted carry implausible goal, shot or pass totals.
func Richness(flat schema.FlatStats) float64 {
	score := 0.0
	for k := range flat {
		switch k {
		case schema.StatPasses, schema.StatDuels, schema.StatLosses, schema.StatRecoveries:
			score += 2
		default:
			score++
		}
	}
	if flat.Get(schema.StatGoals) > 5 {
		score -= 10
	}
	if flat.Get(schema.StatShots) > 15 {
		score -= 10
	}
	if flat.Get(schema.StatPasses) > 150 {
		score -= 10
	}
	return score
}

// BestRow folds candidate rows into the richest one. Ties keep the earlier row.
func BestRow(rows []TableRow) (TableRow, schema.RawStats) {
	var best TableRow
	var bestRaw schema.RawStats
	bestScore := 0.0
	for i, row := range rows {
		raw := row.Raw()
		score := Richness(Flatten(raw))
		if i == 0 || score > bestScore {
			best, bestRaw, bestScore = row, raw, score
		}
	}
	return best, bestRaw
}

// ExtractFieldStats returns the raw stats per player key. Rows whose name is
// not in the index are kept under their own key so nothing is silently merged.
func ExtractFieldStats(text string, idx NameIndex) map[string]schema.RawStats {
	byKey := make(map[string][]TableRow)
	var order []string
	for _, block := range ExtractTableRows(text) {
		used := make(map[string]bool)
		for _, row := range block {
			key := assignRow(row, idx, used)
			used[key] = true
			if _, seen := byKey[key]; !seen {
				order = append(order, key)
			}
			byKey[key] = append(byKey[key], row)
		}
	}

	out := make(map[string]schema.RawStats, len(order))
	for _, key := range order {
		if _, raw := BestRow(byKey[key]); len(raw) > 0 {
			out[key] = raw
		}
	}
	return out
}
