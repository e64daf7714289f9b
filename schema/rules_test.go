package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDefaultRules_WeightsSumToOne(t *testing.T) {
	for _, role := range AllRoles {
		if role == RoleGoalkeeper {
			continue
		}
		t.Run(string(role), func(t *testing.T) {
			rules := GetDefaultRules(role)
			assert.NotEmpty(t, rules)
			sum := 0.0
			for _, r := range rules {
				sum += r.Weight
			}
			assert.InDelta(t, 1.0, sum, 0.001)
		})
	}
	assert.Nil(t, GetDefaultRules(RoleGoalkeeper))
}

func TestGetDefaultRules_TargetsAreOrdered(t *testing.T) {
	for _, role := range AllRoles {
		for _, r := range GetDefaultRules(role) {
			for i := 1; i < 4; i++ {
				if r.Inverted {
					assert.GreaterOrEqual(t, r.Target[i-1], r.Target[i], "%s/%s", role, r.Key)
				} else {
					assert.LessOrEqual(t, r.Target[i-1], r.Target[i], "%s/%s", role, r.Key)
				}
			}
		}
	}
}

func TestGetDefaultKeeperWeights(t *testing.T) {
	sum := 0.0
	for _, w := range GetDefaultKeeperWeights() {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 0.001)
}

func TestPositionRolesCoverAllGroups(t *testing.T) {
	seen := map[RoleGroup]bool{}
	for _, role := range PositionRoles {
		seen[RoleGroups[role]] = true
	}
	assert.Len(t, seen, 4)
}

func TestPlayerRecordKey(t *testing.T) {
	a := PlayerRecord{CanonicalName: "Anna Berg", Team: HomeSide, Number: 7}
	b := PlayerRecord{CanonicalName: "Anna Berg", Team: HomeSide, Number: 17}
	c := PlayerRecord{CanonicalName: "Anna Berg", Team: HomeSide}

	assert.NotEqual(t, a.Key(0), b.Key(1))
	assert.Equal(t, "Anna Berg|home|7", a.Key(0))
	assert.Equal(t, "Anna Berg|home|-3", c.Key(2))
}

func TestFlatStats(t *testing.T) {
	f := FlatStats{StatGoals: 0}
	assert.True(t, f.Has(StatGoals))
	assert.False(t, f.Has(StatAssists))
	assert.Equal(t, 0.0, f.Get(StatAssists))

	var g *GradeResult
	assert.Equal(t, 0.0, g.Score10())
}
