package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/matchgrade/schema"
)

// TestScoreCurve tests the piecewise benchmark curve in both directions.
func TestScoreCurve(t *testing.T) {
	up := [4]float64{0.6, 0.7, 0.8, 0.88}
	down := [4]float64{3, 2, 1, 0.3}
	tests := []struct {
		name     string
		v        float64
		target   [4]float64
		inverted bool
		want     float64
	}{
		{"below a", 0.5, up, false, 0},
		{"at a", 0.6, up, false, 0},
		{"first segment", 0.65, up, false, 20},
		{"at b", 0.7, up, false, 40},
		{"second segment", 0.75, up, false, 57.5},
		{"at c", 0.8, up, false, 75},
		{"third segment", 0.84, up, false, 87.5},
		{"at d", 0.88, up, false, 100},
		{"above d", 0.95, up, false, 100},
		{"inverted worst", 4, down, true, 0},
		{"inverted first segment", 2.5, down, true, 20},
		{"inverted at b", 2, down, true, 40},
		{"inverted at c", 1, down, true, 75},
		{"inverted best", 0, down, true, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ScoreCurve(tt.v, tt.target, tt.inverted), 1e-6)
		})
	}
	assert.Equal(t, 100.0, ScoreCurve(1, [4]float64{1, 1, 1, 1}, false), "meeting a degenerate target is full marks")
	assert.Equal(t, 100.0, ScoreCurve(-1, [4]float64{-1, -1, -1, -1}, true))
	assert.Equal(t, 0.0, ScoreCurve(0.5, [4]float64{1, 1, 1, 1}, false))
}

func strikerStats() schema.FlatStats {
	return schema.FlatStats{
		schema.StatGoals:         1,
		schema.StatXG:            0.6,
		schema.StatShots:         4,
		schema.StatShotsOnTarget: 2,
		schema.StatPasses:        20,
		schema.StatPassesSuccess: 15,
		schema.StatDuels:         10,
		schema.StatDuelsWon:      4,
		schema.StatLosses:        8,
		schema.StatLossesOwnHalf: 1,
		schema.StatAssists:       0,
	}
}

func gradeStriker(stats schema.FlatStats) *schema.GradeResult {
	return GradeOutfield(stats, ComputeDerived(stats, 90, schema.RoleStriker), schema.GetDefaultRules(schema.RoleStriker))
}

// TestGradeOutfield tests null, neutral and weighted grades.
func TestGradeOutfield(t *testing.T) {
	t.Run("no stats", func(t *testing.T) {
		assert.Nil(t, gradeStriker(schema.FlatStats{}))
	})

	t.Run("neutral fallback", func(t *testing.T) {
		g := gradeStriker(schema.FlatStats{schema.StatInterceptions: 1})
		require.NotNil(t, g)
		assert.Equal(t, 50.0, *g.Overall100)
		assert.Equal(t, 5.0, *g.Overall10)
		assert.Equal(t, 50.0, g.Breakdown[schema.MetricNeutralFallback])
	})

	t.Run("breakdown sums to overall", func(t *testing.T) {
		g := gradeStriker(strikerStats())
		require.NotNil(t, g)
		sum := 0.0
		for _, v := range g.Breakdown {
			sum += v
		}
		assert.InDelta(t, *g.Overall100, sum, 0.05)
		_, gated := g.Breakdown[schema.MetricAssistsP90]
		assert.False(t, gated, "zero assists skips the assists rule")
	})

	t.Run("gated metric is invisible at zero", func(t *testing.T) {
		withZero := strikerStats()
		withZero[schema.StatGoals] = 0
		withoutKey := strikerStats()
		delete(withoutKey, schema.StatGoals)
		assert.Equal(t, *gradeStriker(withZero).Overall100, *gradeStriker(withoutKey).Overall100)
	})

	t.Run("bounds", func(t *testing.T) {
		great := schema.FlatStats{
			schema.StatGoals: 3, schema.StatXG: 1.2, schema.StatShots: 5, schema.StatShotsOnTarget: 5,
			schema.StatPasses: 30, schema.StatPassesSuccess: 29, schema.StatDuels: 10, schema.StatDuelsWon: 9,
			schema.StatLosses: 2, schema.StatLossesOwnHalf: 0, schema.StatAssists: 2,
		}
		awful := schema.FlatStats{
			schema.StatShots: 5, schema.StatShotsOnTarget: 0, schema.StatPasses: 30, schema.StatPassesSuccess: 5,
			schema.StatDuels: 10, schema.StatDuelsWon: 0, schema.StatLossesOwnHalf: 9, schema.StatRedCards: 1,
		}
		for _, stats := range []schema.FlatStats{great, awful, strikerStats()} {
			g := gradeStriker(stats)
			require.NotNil(t, g)
			assert.GreaterOrEqual(t, *g.Overall10, 1.0)
			assert.LessOrEqual(t, *g.Overall10, 10.0)
		}
		assert.Equal(t, 10.0, *gradeStriker(great).Overall10)
		assert.Equal(t, 1.0, *gradeStriker(awful).Overall10)
		assert.Equal(t, 0.0, *gradeStriker(awful).Overall100)
	})
}

// TestCardPenaltiesMonotonic tests that cards never raise a grade.
func TestCardPenaltiesMonotonic(t *testing.T) {
	bases := []schema.FlatStats{strikerStats(), {schema.StatInterceptions: 1}}
	for _, base := range bases {
		clean := gradeStriker(base)
		for _, card := range []schema.StatKey{schema.StatYellowCards, schema.StatRedCards} {
			booked := schema.FlatStats{}
			for k, v := range base {
				booked[k] = v
			}
			booked[card] = 1
			g := gradeStriker(booked)
			assert.LessOrEqual(t, *g.Overall100, *clean.Overall100)
			assert.Less(t, g.Breakdown[schema.MetricCardPenalty], 0.0)
		}
	}
	assert.Equal(t, 35.0, CardPenalty(schema.FlatStats{schema.StatYellowCards: 2, schema.StatRedCards: 1}))
}

// TestRulesFor tests configured weight overrides.
func TestRulesFor(t *testing.T) {
	overrides := map[schema.Role]map[schema.MetricKey]float64{
		schema.RoleStriker: {schema.MetricGoalsP90: 0.3, schema.MetricXGP90: 0.05},
	}
	rules := RulesFor(schema.RoleStriker, overrides)
	for _, r := range rules {
		switch r.Key {
		case schema.MetricGoalsP90:
			assert.Equal(t, 0.3, r.Weight)
		case schema.MetricXGP90:
			assert.Equal(t, 0.05, r.Weight)
		}
	}
	assert.Equal(t, schema.GetDefaultRules(schema.RoleWinger), RulesFor(schema.RoleWinger, overrides))
	assert.Nil(t, RulesFor(schema.RoleGoalkeeper, nil))
}

// TestGradeKeeper tests the keeper blend and its null case.
func TestGradeKeeper(t *testing.T) {
	t.Run("no components", func(t *testing.T) {
		assert.Nil(t, GradeKeeper(schema.DerivedMetrics{schema.MetricSavesP90: 3}, 90, nil))
		assert.Nil(t, GradeKeeper(schema.DerivedMetrics{}, 90, nil))
	})

	t.Run("average keeper", func(t *testing.T) {
		derived := schema.DerivedMetrics{
			schema.MetricSavePct:         0.70,
			schema.MetricXCGPreventedP90: 0,
			schema.MetricConcededP90:     2,
		}
		g := GradeKeeper(derived, 45, nil)
		require.NotNil(t, g)
		assert.InDelta(t, 5.5, *g.Overall10, 1e-9)
		assert.Nil(t, g.Overall100)
		assert.Equal(t, 0.5, *g.Confidence)
	})

	t.Run("single component", func(t *testing.T) {
		g := GradeKeeper(schema.DerivedMetrics{schema.MetricConcededP90: 10}, 120, nil)
		require.NotNil(t, g)
		assert.Equal(t, 1.0, *g.Overall10, "conceded rate is capped")
		assert.Equal(t, 1.0, *g.Confidence)

		g = GradeKeeper(schema.DerivedMetrics{schema.MetricSavePct: 1.0}, 90, nil)
		require.NotNil(t, g)
		assert.InDelta(t, 10.0, *g.Overall10, 1e-9)
	})

	t.Run("custom weights", func(t *testing.T) {
		derived := schema.DerivedMetrics{schema.MetricSavePct: 1.0, schema.MetricConcededP90: 4}
		g := GradeKeeper(derived, 90, map[schema.MetricKey]float64{schema.KeeperConceded: 1})
		require.NotNil(t, g)
		assert.Equal(t, 1.0, *g.Overall10)
	})
}
