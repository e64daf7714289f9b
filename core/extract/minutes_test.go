package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMatchLength tests the stoppage-adjusted match length.
func TestMatchLength(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"no markers", "Starting lineup", 90},
		{"regular markers", "Sub 70'\nSub 85'", 90},
		{"stoppage", "Goal 90+4'", 94},
		{"implausible marker", "Page 300'", 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchLength(tt.text))
		})
	}
}

// TestResolveMinutes tests starter, substitute and table minutes.
func TestResolveMinutes(t *testing.T) {
	t.Run("starter and substitute", func(t *testing.T) {
		text := "Starting lineup\nCF 9 Cara Smith\nSubstitutes\nFW 19 Gia Sub 70'"
		players := ExtractLineup(text, DefaultLineupOptions())
		table, length := ResolveMinutes(text, players)
		assert.Equal(t, 90, length)
		assert.Equal(t, 90, table["cara smith#9"].TotalMinutes)
		assert.Equal(t, 20, table["gia sub#19"].TotalMinutes)
	})

	t.Run("substituted starter keeps match length", func(t *testing.T) {
		text := "Starting lineup\nCF 9 Cara Smith 75'\nSubstitutes\nFW 19 Gia Sub 60'"
		players := ExtractLineup(text, DefaultLineupOptions())
		table, _ := ResolveMinutes(text, players)
		assert.Equal(t, 90, table["cara smith#9"].TotalMinutes)
		assert.Equal(t, 30, table["gia sub#19"].TotalMinutes)
	})

	t.Run("starter capped at matching entry minute", func(t *testing.T) {
		text := "Starting lineup\nCF 9 Cara Smith 70'\nSubstitutes\nFW 19 Gia Sub 70'"
		players := ExtractLineup(text, DefaultLineupOptions())
		table, _ := ResolveMinutes(text, players)
		assert.Equal(t, 70, table["cara smith#9"].TotalMinutes)
		assert.Equal(t, 20, table["gia sub#19"].TotalMinutes)
	})

	t.Run("stoppage time", func(t *testing.T) {
		text := "Starting lineup\nCF 9 Cara Smith\nSubstitutes\nFW 19 Gia Sub 90+2'\nFull time 90+5'"
		players := ExtractLineup(text, DefaultLineupOptions())
		table, length := ResolveMinutes(text, players)
		assert.Equal(t, 95, length)
		assert.Equal(t, 95, table["cara smith#9"].TotalMinutes)
		assert.Equal(t, 3, table["gia sub#19"].TotalMinutes)
	})

	t.Run("unused substitute", func(t *testing.T) {
		text := "Starting lineup\nCF 9 Cara Smith\nSubstitutes\nFW 19 Gia Sub"
		players := ExtractLineup(text, DefaultLineupOptions())
		table, _ := ResolveMinutes(text, players)
		assert.Equal(t, 0, table["gia sub#19"].TotalMinutes)
	})

	t.Run("table minutes override", func(t *testing.T) {
		text := "Starting lineup\nCF 9 Cara Smith\nSubstitutes\nFW 19 Gia Sub 70'\nPlayer stats\n9 C. Smith 64' 0/0.12\nG. Sub 26' 0/0.01"
		players := ExtractLineup(text, DefaultLineupOptions())
		table, _ := ResolveMinutes(text, players)
		assert.Equal(t, 64, table["cara smith#9"].TotalMinutes)
		assert.Equal(t, 26, table["gia sub#19"].TotalMinutes)
	})
}
