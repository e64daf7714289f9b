package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/matchgrade/schema"
)

// TestNormalize tests whitespace collapsing and prime replacement.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"crlf and blank lines", "a\r\n\r\nb\r\n", "a\nb"},
		{"horizontal runs", "  GK \t 1  Anna  Keeper  ", "GK 1 Anna Keeper"},
		{"typographic primes", "Sub 75’ and 80′", "Sub 75' and 80'"},
		{"empty", " \n\t\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

// TestNameFolding tests the comparison forms of names.
func TestNameFolding(t *testing.T) {
	assert.Equal(t, "Zaklina Saric", StripDiacritics("Žaklina Šarić"))
	assert.Equal(t, "j van dijk", FoldName("J.  van Dijk"))
	assert.Equal(t, "j van dijk", AbbrevKey("Jane van Dijk"))
	assert.Equal(t, "j van dijk", AbbrevKey("J. van Dijk"))
	assert.Equal(t, "smith", AbbrevKey("Smith"))
	assert.Equal(t, "dijk", Surname("Jane van Dijk"))
	assert.Equal(t, "cara smith#9", PlayerKey("Cara Smith", 9))
	assert.Equal(t, "cara smith", PlayerKey("Cara Smith", 0))
	assert.Equal(t, "shotsontarget", Compact("Shots on\ttarget"))
	assert.Equal(t, "goals/xg", Compact("Goals / xG"))
}

// TestParseFilename tests team and score parsing from file names.
func TestParseFilename(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		want    schema.MatchInfo
		wantErr bool
	}{
		{
			name: "pdf with path",
			file: "/tmp/reports/Home FC - Away FC 2-1.pdf",
			want: schema.MatchInfo{HomeTeam: "Home FC", AwayTeam: "Away FC", Score: "2-1", HomeGoals: 2, AwayGoals: 1},
		},
		{
			name: "hyphenated away team",
			file: "Zagreb - Split-Dalmacija 0 - 3.txt",
			want: schema.MatchInfo{HomeTeam: "Zagreb", AwayTeam: "Split-Dalmacija", Score: "0-3", HomeGoals: 0, AwayGoals: 3},
		},
		{
			name: "underscores",
			file: "Home_FC_-_Away_FC_1-1.html",
			want: schema.MatchInfo{HomeTeam: "Home FC", AwayTeam: "Away FC", Score: "1-1", HomeGoals: 1, AwayGoals: 1},
		},
		{name: "no score", file: "Home FC - Away FC.pdf", wantErr: true},
		{name: "no separator", file: "report.pdf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilename(tt.file)
			if tt.wantErr {
				require.ErrorIs(t, err, schema.ErrFilenameFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestHeader tests date, round and match id extraction.
func TestHeader(t *testing.T) {
	text := "League Report\nRound 05 · 12.05.2024\nHome FC - Away FC"
	assert.Equal(t, "2024-05-12", ExtractDate(text))
	assert.Equal(t, "5", ExtractRound(text))
	assert.Equal(t, "2024-06-01", ExtractDate("Matchday 3\n2024-06-01"))
	assert.Equal(t, "3", ExtractRound("Matchday 3\n2024-06-01"))
	assert.Empty(t, ExtractDate("no date here"))
	assert.Empty(t, ExtractRound("no round here"))

	assert.Equal(t, "2024-05-12-home-fc-away-fc", MatchID("2024-05-12", "Home FC", "away-fc"))
	assert.Equal(t, "undated-nk-osijek-hnk-rijeka", MatchID("", "NK Osijek", "HNK Rijeka"))
}

// TestExtractPositions tests nearest-token collection around name occurrences.
func TestExtractPositions(t *testing.T) {
	text := Normalize(`Starting lineup
CF 9 Cara Smith
CB 4 Beth Stone
Formation
LW Smith
CF Cara Smith`)
	players := []schema.LineupEntry{
		{Name: "Cara Smith", Number: 9, Position: "CF", Starter: true},
		{Name: "Beth Stone", Number: 4, Position: "CB", Starter: true},
		{Name: "Nora Nowhere", Number: 3, Position: "LB", Starter: true},
	}

	got := ExtractPositions(text, players)
	assert.ElementsMatch(t, []string{"CF", "CF", "LW"}, got["cara smith#9"])
	assert.Equal(t, []string{"CB"}, got["beth stone#4"])
	assert.Equal(t, []string{"LB"}, got["nora nowhere#3"], "falls back to the lineup position")

	assert.Equal(t, "CF", MostFrequent(got["cara smith#9"]))
	assert.Equal(t, "", MostFrequent(nil))
	assert.Equal(t, "LB", MostFrequent([]string{"LB", "CB"}))
}
