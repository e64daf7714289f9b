package extract

import "github.com/huangsam/matchgrade/schema"

// Flatten converts raw column tokens into named flat fields. A side that was
// never reported stays absent, so "no data" never reads as zero.
func Flatten(raw schema.RawStats) schema.FlatStats {
	flat := make(schema.FlatStats, len(raw)*2)
	for col, tok := range raw {
		rule, ok := schema.FlattenRules[col]
		if !ok {
			continue
		}
		if rule.Attempts != "" {
			flat[rule.Attempts] = float64(tok.Attempts)
		}
		if rule.Success != "" && tok.Success != nil {
			flat[rule.Success] = float64(*tok.Success)
		}
		switch {
		case rule.Expected != "" && tok.XValue != nil:
			flat[rule.Expected] = *tok.XValue
		case rule.Expected != "" && tok.Success != nil:
			// "1/0" in an xG column is a whole expected value, not a success count.
			flat[rule.Expected] = float64(*tok.Success)
		}
	}
	return flat
}

// MergeRaw overlays src onto dst column by column and returns dst.
func MergeRaw(dst, src schema.RawStats) schema.RawStats {
	if dst == nil {
		dst = make(schema.RawStats, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
