package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/matchgrade/schema"
)

const sampleLineup = `Home FC - Away FC
Starting lineup
GK 1 Anna Keeper
CB 4 Beth Stone
CF 9 Cara Smith 75'
GK 12 Dana Goal
CB 5 Eva Rock
LW 11 Fay Wing 60'
Substitutes
FW 19 Gia Sub 75'
CMF 14 Hana Late 60'
Bench
21 Ida Reserve
Coaches
Head Coach Jo Boss`

func countStarters(entries []schema.LineupEntry) (starters, subs int) {
	for _, e := range entries {
		if e.Starter {
			starters++
		} else {
			subs++
		}
	}
	return starters, subs
}

// TestExtractLineup tests starter and substitute parsing.
func TestExtractLineup(t *testing.T) {
	entries := ExtractLineup(Normalize(sampleLineup), DefaultLineupOptions())
	require.Len(t, entries, 8)

	starters, subs := countStarters(entries)
	assert.Equal(t, 6, starters)
	assert.Equal(t, 2, subs)

	assert.Equal(t, schema.LineupEntry{Name: "Cara Smith", Number: 9, Position: "CF", Starter: true, MinuteHints: []int{75}}, entries[2])
	assert.Equal(t, "Gia Sub", entries[6].Name)
	assert.False(t, entries[6].Starter)
	assert.Equal(t, []int{75}, entries[6].MinuteHints)
}

// TestExtractLineupRoundTrip tests that N starters and M substitutes come back
// exactly once each.
func TestExtractLineupRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		starters int
		subs     int
	}{
		{"full sides", 22, 5},
		{"one side", 11, 3},
		{"no subs", 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			b.WriteString("Starting lineup\n")
			for i := range tt.starters {
				fmt.Fprintf(&b, "CMF %d Starter %c\n", i+1, 'A'+i)
			}
			b.WriteString("Substitutes\n")
			for i := range tt.subs {
				fmt.Fprintf(&b, "FW %d Reserve %c 70'\n", 50+i, 'A'+i)
			}

			entries := ExtractLineup(Normalize(b.String()), DefaultLineupOptions())
			starters, subs := countStarters(entries)
			assert.Equal(t, tt.starters, starters)
			assert.Equal(t, tt.subs, subs)

			seen := make(map[string]bool)
			for _, e := range entries {
				k := PlayerKey(e.Name, e.Number)
				assert.False(t, seen[k], "duplicate %s", k)
				seen[k] = true
			}
		})
	}
}

// TestExtractLineupHeuristics tests the demotion and noise rules.
func TestExtractLineupHeuristics(t *testing.T) {
	t.Run("starter cap", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("Starting lineup\n")
		for i := range 24 {
			fmt.Fprintf(&b, "CMF %d Player %c\n", i+1, 'A'+i)
		}
		entries := ExtractLineup(Normalize(b.String()), DefaultLineupOptions())
		starters, subs := countStarters(entries)
		assert.Equal(t, 22, starters)
		assert.Equal(t, 2, subs)
		assert.False(t, entries[23].Starter)
	})

	t.Run("duplicate rows", func(t *testing.T) {
		text := "Starting lineup\nCB 4 Beth Stone\nCB 4 Beth Stone\nCB 5 Beth Stone"
		entries := ExtractLineup(text, DefaultLineupOptions())
		require.Len(t, entries, 2, "same name with another jersey is a different player")
	})

	t.Run("short single hint", func(t *testing.T) {
		text := "Starting lineup\nCB 4 Beth Stone\nCF 9 Cara Smith 20'\nCF 10 Dora Late 31'"
		entries := ExtractLineup(text, DefaultLineupOptions())
		require.Len(t, entries, 3)
		assert.True(t, entries[0].Starter)
		assert.False(t, entries[1].Starter)
		assert.True(t, entries[2].Starter)
	})

	t.Run("bench overlap", func(t *testing.T) {
		text := "Starting lineup\nGK 1 Anna Keeper\nCB 4 Beth Stone\nCF 9 Cara Smith\nBench\n4 Beth Stone"
		entries := ExtractLineup(text, DefaultLineupOptions())
		require.Len(t, entries, 3)
		assert.True(t, entries[0].Starter)
		assert.False(t, entries[1].Starter)
	})

	t.Run("oversized bench is ignored", func(t *testing.T) {
		text := "Starting lineup\nGK 1 Anna Keeper\nCB 4 Beth Stone\nBench\n1 Anna Keeper\n4 Beth Stone\n7 Some One"
		entries := ExtractLineup(text, DefaultLineupOptions())
		starters, _ := countStarters(entries)
		assert.Equal(t, 2, starters)
	})

	t.Run("non-ASCII header", func(t *testing.T) {
		text := "İİİİİİ FC - Away FC\nStarting lineup\nGK 1 Anna Keeper\nCB 4 Beth Stone\nSubstitutes\nFW 19 Gia Sub 75'"
		entries := ExtractLineup(text, DefaultLineupOptions())
		require.Len(t, entries, 3)
		assert.Equal(t, "Anna Keeper", entries[0].Name)
		assert.True(t, entries[0].Starter)
		assert.Equal(t, "Gia Sub", entries[2].Name)
		assert.False(t, entries[2].Starter)
	})

	t.Run("no lineup marker", func(t *testing.T) {
		text := "Report\nGK 1 Anna Keeper\nCB 4 Beth Stone\nSubstitutes\nFW 19 Gia Sub 75'"
		entries := ExtractLineup(text, DefaultLineupOptions())
		require.Len(t, entries, 3)
		starters, subs := countStarters(entries)
		assert.Equal(t, 2, starters)
		assert.Equal(t, 1, subs)
	})

	t.Run("custom threshold", func(t *testing.T) {
		text := "Starting lineup\nCF 9 Cara Smith 40'"
		entries := ExtractLineup(text, LineupOptions{StarterCap: 22, ShortHintMax: 45})
		require.Len(t, entries, 1)
		assert.False(t, entries[0].Starter)
	})
}
