package algo

import (
	"math"

	"github.com/huangsam/matchgrade/schema"
)

// Curve segment boundaries on the 0-100 scale.
const (
	curveB = 40.0
	curveC = 75.0
	curveD = 100.0
)

// RulesFor returns the rule list for a role with any configured weight
// overrides applied. Overrides for metrics the role does not use are ignored.
func RulesFor(role schema.Role, overrides map[schema.Role]map[schema.MetricKey]float64) []schema.MetricRule {
	rules := schema.GetDefaultRules(role)
	custom, ok := overrides[role]
	if !ok {
		return rules
	}
	for i := range rules {
		if w, ok := custom[rules[i].Key]; ok {
			rules[i].Weight = w
		}
	}
	return rules
}

// lerp maps v from [lo, hi] onto [from, to]. A zero-width segment is a step.
func lerp(v, lo, hi, from, to float64) float64 {
	if hi <= lo {
		return to
	}
	return from + (to-from)*(v-lo)/(hi-lo)
}

// ScoreCurve scores a value on the 4-breakpoint benchmark curve. Inverted
// targets run from worst to best, so they are descending.
func ScoreCurve(v float64, target [4]float64, inverted bool) float64 {
	a, b, c, d := target[0], target[1], target[2], target[3]
	if inverted {
		v, a, b, c, d = -v, -a, -b, -c, -d
	}
	switch {
	case v >= d:
		return curveD
	case v <= a:
		return 0
	case v < b:
		return lerp(v, a, b, 0, curveB)
	case v < c:
		return lerp(v, b, c, curveB, curveC)
	default:
		return lerp(v, c, d, curveC, curveD)
	}
}

// CardPenalty is the flat deduction for cards on the 0-100 scale.
func CardPenalty(stats schema.FlatStats) float64 {
	return stats.Get(schema.StatYellowCards)*schema.YellowCardPenalty +
		stats.Get(schema.StatRedCards)*schema.RedCardPenalty
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// finalize turns a 0-100 score into a GradeResult, flooring overall10 at 1.
func finalize(overall float64, breakdown map[schema.MetricKey]float64) *schema.GradeResult {
	overall = clamp(overall, 0, 100)
	o100 := round1(overall)
	o10 := math.Max(1, math.Round(overall)/10)
	return &schema.GradeResult{Overall10: &o10, Overall100: &o100, Breakdown: breakdown}
}

// GradeOutfield scores an outfield player against a rule list. Without any
// stats there is no grade; with stats but no resolvable rule the grade is
// neutral. Gated rules are skipped while their trigger count is zero.
func GradeOutfield(stats schema.FlatStats, derived schema.DerivedMetrics, rules []schema.MetricRule) *schema.GradeResult {
	if len(stats) == 0 {
		return nil
	}

	type scored struct {
		key    schema.MetricKey
		score  float64
		weight float64
	}
	var parts []scored
	totalWeight := 0.0
	for _, rule := range rules {
		if rule.Weight <= 0 {
			continue
		}
		if rule.Gate != "" && stats.Get(rule.Gate) == 0 {
			continue
		}
		v, ok := derived[rule.Key]
		if !ok {
			continue
		}
		parts = append(parts, scored{key: rule.Key, score: ScoreCurve(v, rule.Target, rule.Inverted), weight: rule.Weight})
		totalWeight += rule.Weight
	}

	breakdown := make(map[schema.MetricKey]float64, len(parts)+1)
	overall := schema.NeutralGrade
	if totalWeight > 0 {
		overall = 0
		for _, p := range parts {
			contribution := p.score * p.weight / totalWeight
			breakdown[p.key] += contribution
			overall += contribution
		}
	} else {
		breakdown[schema.MetricNeutralFallback] = schema.NeutralGrade
	}

	if penalty := CardPenalty(stats); penalty > 0 {
		breakdown[schema.MetricCardPenalty] = -penalty
		overall -= penalty
	}
	return finalize(overall, breakdown)
}
