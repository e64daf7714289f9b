package algo

import (
	"math"

	"github.com/huangsam/matchgrade/schema"
)

// rolePriority breaks count ties between buckets, strongest claim first.
var rolePriority = []schema.Role{
	schema.RoleGoalkeeper,
	schema.RoleStriker,
	schema.RoleWinger,
	schema.RoleMidfielder,
	schema.RoleWingback,
	schema.RoleFullback,
	schema.RoleCenterBack,
}

// groupRoles lists the roles of each group in tie-break order.
var groupRoles = map[schema.RoleGroup][]schema.Role{
	schema.GroupGoalkeeping: {schema.RoleGoalkeeper},
	schema.GroupDefense:     {schema.RoleWingback, schema.RoleFullback, schema.RoleCenterBack},
	schema.GroupMidfield:    {schema.RoleMidfielder},
	schema.GroupAttack:      {schema.RoleStriker, schema.RoleWinger},
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// pickGroup selects the primary group. Goalkeeping wins whenever it has any
// count and nothing beats it; otherwise attack beats midfield beats defense on ties.
func pickGroup(groups map[schema.RoleGroup]int) schema.RoleGroup {
	if gk := groups[schema.GroupGoalkeeping]; gk > 0 {
		dominated := false
		for _, g := range []schema.RoleGroup{schema.GroupDefense, schema.GroupMidfield, schema.GroupAttack} {
			if groups[g] > gk {
				dominated = true
			}
		}
		if !dominated {
			return schema.GroupGoalkeeping
		}
	}
	best := schema.GroupAttack
	for _, g := range []schema.RoleGroup{schema.GroupMidfield, schema.GroupDefense} {
		if groups[g] > groups[best] {
			best = g
		}
	}
	return best
}

// DetectRole maps raw position tokens to a functional role. Unknown tokens are
// ignored; with nothing countable the fallback is returned at zero confidence.
func DetectRole(tokens []string, fallback schema.Role) schema.RoleResult {
	counts := make(map[schema.Role]int)
	groups := make(map[schema.RoleGroup]int)
	total := 0
	for _, tok := range tokens {
		role, ok := schema.PositionRoles[tok]
		if !ok {
			continue
		}
		counts[role]++
		groups[schema.RoleGroups[role]]++
		total++
	}
	if total == 0 {
		return schema.RoleResult{Primary: fallback}
	}

	var primary schema.Role
	for _, r := range groupRoles[pickGroup(groups)] {
		if primary == "" || counts[r] > counts[primary] {
			primary = r
		}
	}

	var secondary schema.Role
	for _, r := range rolePriority {
		if r == primary || counts[r] == 0 {
			continue
		}
		if secondary == "" || counts[r] > counts[secondary] {
			secondary = r
		}
	}

	return schema.RoleResult{
		Primary:    primary,
		Secondary:  secondary,
		Confidence: round2(float64(counts[primary]) / float64(total)),
	}
}

// FallbackRole maps a lineup position token to a role, defaulting to midfielder.
func FallbackRole(position string) schema.Role {
	if role, ok := schema.PositionRoles[position]; ok {
		return role
	}
	return schema.RoleMidfielder
}
