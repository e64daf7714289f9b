package algo

import (
	"math"
	"sort"

	"github.com/huangsam/matchgrade/schema"
)

func deltaOf(p *schema.PlayerRecord) float64 {
	if p.Delta == nil {
		return math.Inf(-1)
	}
	return *p.Delta
}

// RankPerformers orders graded players: grade, grade*10+impact, impact,
// minutes, then delta, all descending. The input slice is sorted in place.
func RankPerformers(players []*schema.PlayerRecord) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		ga, gb := a.GameGrade.Score10(), b.GameGrade.Score10()
		if ga != gb {
			return ga > gb
		}
		if ca, cb := ga*10+a.ImpactScore, gb*10+b.ImpactScore; ca != cb {
			return ca > cb
		}
		if a.ImpactScore != b.ImpactScore {
			return a.ImpactScore > b.ImpactScore
		}
		if a.MinutesPlayed != b.MinutesPlayed {
			return a.MinutesPlayed > b.MinutesPlayed
		}
		return deltaOf(a) > deltaOf(b)
	})
}

func summarize(p *schema.PlayerRecord) *schema.PerformerSummary {
	return &schema.PerformerSummary{
		PlayerID:      p.PlayerID,
		Name:          p.CanonicalName,
		Role:          p.RolePlayed.Primary,
		MinutesPlayed: p.MinutesPlayed,
		GameGrade:     p.GameGrade,
		Delta:         p.Delta,
		ImpactScore:   p.ImpactScore,
		KeyStats:      KeyStats(p.Stats, p.RolePlayed.Primary),
	}
}

// SelectBest picks the best performer per side among graded players with at
// least minMinutes played.
func SelectBest(players []schema.PlayerRecord, minMinutes int) schema.BestPerformers {
	pick := func(side schema.Side) *schema.PerformerSummary {
		var pool []*schema.PlayerRecord
		for i := range players {
			p := &players[i]
			if p.Team != side || p.Unresolved || p.MinutesPlayed < minMinutes {
				continue
			}
			if p.GameGrade == nil || p.GameGrade.Overall10 == nil {
				continue
			}
			pool = append(pool, p)
		}
		if len(pool) == 0 {
			return nil
		}
		RankPerformers(pool)
		return summarize(pool[0])
	}
	return schema.BestPerformers{Home: pick(schema.HomeSide), Away: pick(schema.AwaySide)}
}
