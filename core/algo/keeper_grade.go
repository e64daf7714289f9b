package algo

import (
	"math"

	"github.com/huangsam/matchgrade/schema"
)

// keeperComponents normalizes the available blend inputs to [-1, 1].
func keeperComponents(derived schema.DerivedMetrics) map[schema.MetricKey]float64 {
	out := make(map[schema.MetricKey]float64, 3)
	if pct, ok := derived[schema.MetricSavePct]; ok {
		out[schema.KeeperSavePct] = clamp((pct-schema.KeeperAvgSave)/schema.KeeperSaveRange, -1, 1)
	}
	if diff, ok := derived[schema.MetricXCGPreventedP90]; ok {
		out[schema.KeeperXCGDiff] = clamp(diff, -1, 1)
	}
	if c90, ok := derived[schema.MetricConcededP90]; ok {
		capped := math.Min(c90, schema.KeeperMaxP90)
		out[schema.KeeperConceded] = 1 - 2*capped/schema.KeeperMaxP90
	}
	return out
}

// GradeKeeper blends save percentage, goals prevented against xCG and a capped
// conceded rate into a 1-10 grade. Missing components are left out of the
// blend; with none available there is no grade.
func GradeKeeper(derived schema.DerivedMetrics, minutes int, weights map[schema.MetricKey]float64) *schema.GradeResult {
	if len(weights) == 0 {
		weights = schema.GetDefaultKeeperWeights()
	}
	comps := keeperComponents(derived)

	blend, total := 0.0, 0.0
	breakdown := make(map[schema.MetricKey]float64, len(comps))
	for key, v := range comps {
		w := weights[key]
		if w <= 0 {
			continue
		}
		blend += w * v
		total += w
		breakdown[key] = round2(v)
	}
	if total == 0 {
		return nil
	}
	blend /= total

	o10 := round1(1 + (blend+1)/2*9)
	confidence := round2(math.Min(1, float64(max(minutes, 0))/90))
	return &schema.GradeResult{Overall10: &o10, Breakdown: breakdown, Confidence: &confidence}
}
