package algo

import (
	"github.com/huangsam/matchgrade/schema"
)

// impactWeight is one term of an impact score.
type impactWeight struct {
	stat   schema.StatKey
	weight float64
}

var (
	attackImpact = []impactWeight{
		{schema.StatGoals, 4},
		{schema.StatAssists, 3},
		{schema.StatShotsOnTarget, 0.5},
		{schema.StatKeyPasses, 0.5},
		{schema.StatDribblesSuccess, 0.3},
		{schema.StatLossesOwnHalf, -0.5},
	}
	wideDefenseImpact = []impactWeight{
		{schema.StatCrossesSuccess, 0.6},
		{schema.StatAssists, 3},
		{schema.StatGoals, 3},
		{schema.StatDuelsWon, 0.3},
		{schema.StatInterceptions, 0.5},
		{schema.StatRecoveries, 0.3},
		{schema.StatLossesOwnHalf, -0.8},
	}
)

// impactWeights holds the role-specific linear combinations.
var impactWeights = map[schema.Role][]impactWeight{
	schema.RoleStriker: attackImpact,
	schema.RoleWinger:  attackImpact,
	schema.RoleMidfielder: {
		{schema.StatAssists, 3},
		{schema.StatGoals, 3},
		{schema.StatKeyPasses, 1},
		{schema.StatPassesSuccess, 0.02},
		{schema.StatRecoveries, 0.3},
		{schema.StatDuelsWon, 0.2},
		{schema.StatLossesOwnHalf, -0.7},
	},
	schema.RoleFullback: wideDefenseImpact,
	schema.RoleWingback: wideDefenseImpact,
	schema.RoleCenterBack: {
		{schema.StatClearances, 0.5},
		{schema.StatInterceptions, 0.6},
		{schema.StatAerialDuelsWon, 0.4},
		{schema.StatDefDuelsWon, 0.3},
		{schema.StatGoals, 3},
		{schema.StatLossesOwnHalf, -1.5},
	},
	schema.RoleGoalkeeper: {
		{schema.StatSaves, 1},
		{schema.StatReflexSaves, 0.5},
		{schema.StatExits, 0.3},
		{schema.StatConcededGoals, -1},
	},
}

// ImpactScore is a role-weighted sum of raw match counts, used only for ranking.
func ImpactScore(stats schema.FlatStats, role schema.Role) float64 {
	score := 0.0
	for _, w := range impactWeights[role] {
		score += stats.Get(w.stat) * w.weight
	}
	return round2(score)
}

// KeyStats extracts the role's whitelisted stats, non-zero values only.
func KeyStats(stats schema.FlatStats, role schema.Role) map[schema.StatKey]float64 {
	out := make(map[schema.StatKey]float64)
	for _, k := range schema.KeyStatWhitelist[role] {
		if v := stats.Get(k); v != 0 {
			out[k] = v
		}
	}
	return out
}
