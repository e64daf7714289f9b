// Package algo holds the pure scoring functions: derived metrics, role
// detection, grading and best-performer ranking.
package algo

import (
	"github.com/huangsam/matchgrade/schema"
)

// per90 pairs a derived rate with the flat stat it is computed from.
type per90 struct {
	metric schema.MetricKey
	stat   schema.StatKey
}

// ratio pairs a derived success ratio with its success and attempts stats.
type ratio struct {
	metric   schema.MetricKey
	success  schema.StatKey
	attempts schema.StatKey
}

var outfieldRates = []per90{
	{schema.MetricGoalsP90, schema.StatGoals},
	{schema.MetricAssistsP90, schema.StatAssists},
	{schema.MetricXGP90, schema.StatXG},
	{schema.MetricXAP90, schema.StatXA},
	{schema.MetricShotsP90, schema.StatShots},
	{schema.MetricShotsOnTargetP90, schema.StatShotsOnTarget},
	{schema.MetricPassesP90, schema.StatPasses},
	{schema.MetricAccPassesP90, schema.StatPassesSuccess},
	{schema.MetricCrossesP90, schema.StatCrosses},
	{schema.MetricDribblesP90, schema.StatDribbles},
	{schema.MetricDuelsP90, schema.StatDuels},
	{schema.MetricDuelsWonP90, schema.StatDuelsWon},
	{schema.MetricLossesP90, schema.StatLosses},
	{schema.MetricOwnHalfLossesP90, schema.StatLossesOwnHalf},
	{schema.MetricRecoveriesP90, schema.StatRecoveries},
	{schema.MetricOppRecoveriesP90, schema.StatRecoveriesOppHalf},
	{schema.MetricInterceptionsP90, schema.StatInterceptions},
	{schema.MetricClearancesP90, schema.StatClearances},
	{schema.MetricKeyPassesP90, schema.StatKeyPasses},
	{schema.MetricAerialWonP90, schema.StatAerialDuelsWon},
	{schema.MetricDefDuelsWonP90, schema.StatDefDuelsWon},
}

var outfieldRatios = []ratio{
	{schema.MetricPassAccuracy, schema.StatPassesSuccess, schema.StatPasses},
	{schema.MetricShotAccuracy, schema.StatShotsOnTarget, schema.StatShots},
	{schema.MetricCrossAccuracy, schema.StatCrossesSuccess, schema.StatCrosses},
	{schema.MetricDribbleSuccess, schema.StatDribblesSuccess, schema.StatDribbles},
	{schema.MetricDuelWinRate, schema.StatDuelsWon, schema.StatDuels},
	{schema.MetricDefDuelWinRate, schema.StatDefDuelsWon, schema.StatDefensiveDuels},
	{schema.MetricAerialWinRate, schema.StatAerialDuelsWon, schema.StatAerialDuels},
	{schema.MetricActionSuccess, schema.StatActionsSuccess, schema.StatActions},
}

var keeperRates = []per90{
	{schema.MetricSavesP90, schema.StatSaves},
	{schema.MetricConcededP90, schema.StatConcededGoals},
	{schema.MetricKeeperPassesP90, schema.StatPasses},
	{schema.MetricExitsP90, schema.StatExits},
	{schema.MetricReflexSavesP90, schema.StatReflexSaves},
}

// rate90 normalizes a count to 90 minutes. Zero minutes yield no rate.
func rate90(v float64, minutes int) (float64, bool) {
	if minutes <= 0 {
		return 0, false
	}
	return v * 90 / float64(minutes), true
}

// successRatio follows presence semantics: no attempts field means no ratio,
// zero attempts with a success field means 0.
func successRatio(stats schema.FlatStats, success, attempts schema.StatKey) (float64, bool) {
	if !stats.Has(attempts) || !stats.Has(success) {
		return 0, false
	}
	a := stats.Get(attempts)
	if a == 0 {
		return 0, true
	}
	return stats.Get(success) / a, true
}

func applyRates(out schema.DerivedMetrics, stats schema.FlatStats, minutes int, rates []per90) {
	for _, r := range rates {
		if !stats.Has(r.stat) {
			continue
		}
		if v, ok := rate90(stats.Get(r.stat), minutes); ok {
			out[r.metric] = v
		}
	}
}

// ComputeDerived converts flat stats into per-90 rates and success ratios.
// Goalkeepers get their own metric set instead of the outfield one.
func ComputeDerived(stats schema.FlatStats, minutes int, role schema.Role) schema.DerivedMetrics {
	if role == schema.RoleGoalkeeper {
		return computeKeeperDerived(stats, minutes)
	}
	out := make(schema.DerivedMetrics)
	applyRates(out, stats, minutes, outfieldRates)
	for _, r := range outfieldRatios {
		if v, ok := successRatio(stats, r.success, r.attempts); ok {
			out[r.metric] = v
		}
	}
	if stats.Has(schema.StatGoals) && stats.Has(schema.StatXG) {
		if v, ok := rate90(stats.Get(schema.StatGoals)-stats.Get(schema.StatXG), minutes); ok {
			out[schema.MetricXGOverperformance] = v
		}
	}
	return out
}

func computeKeeperDerived(stats schema.FlatStats, minutes int) schema.DerivedMetrics {
	out := make(schema.DerivedMetrics)
	applyRates(out, stats, minutes, keeperRates)

	saves, conceded := stats.Get(schema.StatSaves), stats.Get(schema.StatConcededGoals)
	switch {
	case stats.Has(schema.StatSaves) && stats.Get(schema.StatShotsAgainst) > 0:
		out[schema.MetricSavePct] = min(1, saves/stats.Get(schema.StatShotsAgainst))
	case stats.Has(schema.StatSaves) && stats.Has(schema.StatConcededGoals) && saves+conceded > 0:
		out[schema.MetricSavePct] = saves / (saves + conceded)
	}

	if stats.Has(schema.StatXCG) && stats.Has(schema.StatConcededGoals) {
		if v, ok := rate90(stats.Get(schema.StatXCG)-conceded, minutes); ok {
			out[schema.MetricXCGPreventedP90] = v
		}
	}
	if v, ok := successRatio(stats, schema.StatPassesSuccess, schema.StatPasses); ok {
		out[schema.MetricKeeperPassAcc] = v
	}
	return out
}
