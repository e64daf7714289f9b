package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/huangsam/matchgrade/schema"
)

// maxTokenValue is the noise guard: no single-match count in the report exceeds it.
const maxTokenValue = 200

var (
	ratioTokenRe   = regexp.MustCompile(`^(\d+)/(\d+(?:[.,]\d+)?)%?$`)
	bareIntRe      = regexp.MustCompile(`^\d+$`)
	bareDecimalRe  = regexp.MustCompile(`^\d+[.,]\d+$`)
	percentTokenRe = regexp.MustCompile(`^\d*(?:[.,]\d+)?%$`)
)

// tokenKind classifies one whitespace-separated piece of a row tail.
type tokenKind int

const (
	tokenSkip tokenKind = iota // not a column at all (percent, noise)
	tokenNull                  // a dash: the column exists but is empty
	tokenValue
)

func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// unglueSuccess recovers the success count from a right-hand side that had
// its percentage glued on, e.g. "34/2882" (28 and 82%) or "10/10100" (10 and 100%).
func unglueSuccess(attempts int, rhs string) string {
	if len(rhs) < 3 {
		return rhs
	}
	v, err := strconv.Atoi(rhs)
	if err != nil || v <= attempts {
		return rhs
	}
	if strings.HasSuffix(rhs, "100") && len(rhs) > 3 {
		return rhs[:len(rhs)-3]
	}
	return rhs[:len(rhs)-2]
}

// ParseRatio parses a single cell. "N/M" yields attempts N and success M; a
// decimal M is an expected value (xG/xA). The boolean is false for anything
// that is not a usable cell, including values above the noise guard.
func ParseRatio(tok string) (schema.RawStatToken, bool) {
	tok = strings.TrimSpace(tok)
	if m := ratioTokenRe.FindStringSubmatch(tok); m != nil {
		attempts, err := strconv.Atoi(m[1])
		if err != nil || attempts > maxTokenValue {
			return schema.RawStatToken{}, false
		}
		if strings.ContainsAny(m[2], ".,") {
			x, err := parseDecimal(m[2])
			if err != nil {
				return schema.RawStatToken{}, false
			}
			return schema.RawStatToken{Attempts: attempts, XValue: &x}, true
		}
		success, err := strconv.Atoi(unglueSuccess(attempts, m[2]))
		if err != nil || success > maxTokenValue {
			return schema.RawStatToken{}, false
		}
		return schema.RawStatToken{Attempts: attempts, Success: &success}, true
	}
	if bareIntRe.MatchString(tok) {
		n, err := strconv.Atoi(tok)
		if err != nil || n > maxTokenValue {
			return schema.RawStatToken{}, false
		}
		return schema.RawStatToken{Attempts: n}, true
	}
	if bareDecimalRe.MatchString(tok) {
		x, err := parseDecimal(tok)
		if err != nil {
			return schema.RawStatToken{}, false
		}
		return schema.RawStatToken{XValue: &x}, true
	}
	return schema.RawStatToken{}, false
}

func classify(piece string) (tokenKind, *schema.RawStatToken) {
	switch {
	case piece == "-" || piece == "–" || piece == "—":
		return tokenNull, nil
	case piece == "%" || percentTokenRe.MatchString(piece):
		return tokenSkip, nil
	}
	if tok, ok := ParseRatio(piece); ok {
		return tokenValue, &tok
	}
	if ratioTokenRe.MatchString(piece) || bareIntRe.MatchString(piece) {
		// Well-formed but over the noise guard: keep the column position, drop the value.
		return tokenNull, nil
	}
	return tokenSkip, nil
}

// SplitRatioTail parses a row tail into at most len(schema.FieldColumns)
// positional tokens. A nil entry is an empty column.
func SplitRatioTail(tail string) []*schema.RawStatToken {
	limit := len(schema.FieldColumns)
	out := make([]*schema.RawStatToken, 0, limit)
	for _, piece := range strings.Fields(tail) {
		if len(out) == limit {
			break
		}
		kind, tok := classify(piece)
		switch kind {
		case tokenNull:
			out = append(out, nil)
		case tokenValue:
			out = append(out, tok)
		}
	}
	return out
}

// successColumns lists the ratio columns, in layout order.
func successColumns() []schema.StatKey {
	var cols []schema.StatKey
	for _, col := range schema.FieldColumns {
		if schema.FlattenRules[col].Success != "" {
			cols = append(cols, col)
		}
	}
	return cols
}

// expectedColumn reports whether the column at position i carries an
// expected value (goals/xG, assists/xA) rather than a success count.
func expectedColumn(i int) bool {
	return i < len(schema.FieldColumns) && schema.FlattenRules[schema.FieldColumns[i]].Expected != ""
}

// TailToRawStats assigns tokens to columns by position, then reconciles the
// ratio columns against the integer ratios actually present in the tail. The
// reconciliation only fires when the counts line up exactly, which undoes
// drift from detached percentages or stray numbers. Cells in the expected-value
// columns never take part, even when their right side is an integer like "0/0".
func TailToRawStats(tail string) schema.RawStats {
	stats := make(schema.RawStats)
	for i, tok := range SplitRatioTail(tail) {
		if tok != nil {
			stats[schema.FieldColumns[i]] = *tok
		}
	}

	var ratios []schema.RawStatToken
	pos := 0
	for _, piece := range strings.Fields(tail) {
		kind, tok := classify(piece)
		if kind == tokenSkip {
			continue
		}
		at := pos
		pos++
		if expectedColumn(at) || kind != tokenValue || !ratioTokenRe.MatchString(piece) {
			continue
		}
		if tok.Success != nil {
			ratios = append(ratios, *tok)
		}
	}
	cols := successColumns()
	if len(ratios) == len(cols) {
		for i, col := range cols {
			stats[col] = ratios[i]
		}
	}
	return stats
}
