package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
)

const sampleReport = `Home FC - Away FC
Matchday 5
12.03.2026
Starting lineup
GK 1 Anna Keeper
CF 9 Cara Smith 75'
GK 12 Dana Goal
LW 11 Fay Wing
Substitutes
FW 19 Gia Sub 75'
Coaches
Head Coach Jo Boss
Player stats
# Player Min Goals/xG Assists/xA Actions/successful Shots/on target
Passes/accurate Crosses/accurate Dribbles/successful Duels/won Losses/own half Recoveries/opp. half Cards Defensive duels/won Aerial duels/won Interceptions Clearances Key passes
9 C. Smith 75' 1/0.45 0/0.10 30/18 4/2 25/20 1/0 5/3 15/7 8/2 4/1 0/0 3/1 2/1 0 1 2
Team stats
Anna Keeper
Goalkeeper in match
Saves 4
Conceded goals 1`

func sampleRoster() schema.RosterSnapshot {
	return schema.RosterSnapshot{
		Teams: []schema.RosterTeam{
			{ID: 1, TeamID: "home-fc", Name: "Home FC", Slug: "home-fc"},
			{ID: 2, TeamID: "away-fc", Name: "Away FC", Slug: "away-fc"},
		},
		Players: []schema.RosterPlayer{
			{ID: 1, PlayerID: "p-keeper", TeamID: "home-fc", Name: "Anna Keeper", Number: 1},
			{ID: 2, PlayerID: "p-smith", TeamID: "home-fc", Name: "Cara Smith", AbbrName: "C. Smith", Number: 9},
			{ID: 3, PlayerID: "p-goal", TeamID: "away-fc", Name: "Dana Goal", Number: 12},
			{ID: 4, PlayerID: "p-wing", TeamID: "away-fc", Name: "Fay Wing", Number: 11},
		},
	}
}

func findPlayer(t *testing.T, payload *schema.MatchPayload, name string) schema.PlayerRecord {
	t.Helper()
	for _, p := range payload.Players {
		if p.Name == name {
			return p
		}
	}
	require.Failf(t, "player missing", "no record for %s", name)
	return schema.PlayerRecord{}
}

// TestProcessMatch tests the full pipeline on a small report.
func TestProcessMatch(t *testing.T) {
	doc := schema.Document{Filename: "Home FC - Away FC 2-1.pdf", Text: sampleReport}
	baselines := map[string]float64{"p-smith": 6.0}

	payload, err := ProcessMatch(context.Background(), doc, sampleRoster(), baselines, DefaultProcessOptions())
	require.NoError(t, err)

	assert.Equal(t, "2026-03-12-home-fc-away-fc", payload.MatchID)
	assert.Equal(t, "2026-03-12", payload.Date)
	assert.Equal(t, "5", payload.Round)
	assert.Equal(t, "Home FC", payload.HomeTeam)
	assert.Equal(t, "away-fc", payload.AwayTeamID)
	assert.Equal(t, "2-1", payload.Score)
	assert.Equal(t, 2, payload.HomeGoals)
	assert.Equal(t, 1, payload.AwayGoals)
	require.Len(t, payload.Players, 5)

	t.Run("graded striker", func(t *testing.T) {
		smith := findPlayer(t, payload, "Cara Smith")
		assert.Equal(t, "p-smith", smith.PlayerID)
		assert.Equal(t, schema.HomeSide, smith.Team)
		assert.Equal(t, 75, smith.MinutesPlayed)
		assert.Equal(t, schema.RoleStriker, smith.RolePlayed.Primary)
		assert.InDelta(t, 1.0, smith.Stats.Get(schema.StatGoals), 0.001)
		require.NotNil(t, smith.GameGrade)
		require.NotNil(t, smith.GameGrade.Overall10)
		assert.GreaterOrEqual(t, *smith.GameGrade.Overall10, 1.0)
		assert.LessOrEqual(t, *smith.GameGrade.Overall10, 10.0)
		require.NotNil(t, smith.Delta)
		assert.InDelta(t, *smith.GameGrade.Overall10-6.0, *smith.Delta, 0.051)
		assert.Greater(t, smith.ImpactScore, 0.0)
	})

	t.Run("graded keeper", func(t *testing.T) {
		keeper := findPlayer(t, payload, "Anna Keeper")
		assert.Equal(t, schema.RoleGoalkeeper, keeper.RolePlayed.Primary)
		assert.Equal(t, 90, keeper.MinutesPlayed)
		require.NotNil(t, keeper.GameGrade)
		assert.Nil(t, keeper.GameGrade.Overall100)
		assert.InDelta(t, 0.8, keeper.Derived[schema.MetricSavePct], 0.001)
		assert.Nil(t, keeper.Delta)
	})

	t.Run("ungraded without stats", func(t *testing.T) {
		wing := findPlayer(t, payload, "Fay Wing")
		assert.Equal(t, schema.AwaySide, wing.Team)
		assert.Nil(t, wing.GameGrade)
	})

	t.Run("unresolved substitute", func(t *testing.T) {
		sub := findPlayer(t, payload, "Gia Sub")
		assert.True(t, sub.Unresolved)
		assert.Equal(t, schema.UnknownSide, sub.Team)
		assert.Empty(t, sub.PlayerID)
		assert.Equal(t, 15, sub.MinutesPlayed)
		assert.Nil(t, sub.GameGrade)
	})

	t.Run("best performers", func(t *testing.T) {
		require.NotNil(t, payload.BestPerformers.Home)
		assert.Contains(t, []string{"p-smith", "p-keeper"}, payload.BestPerformers.Home.PlayerID)
		assert.Nil(t, payload.BestPerformers.Away)
	})
}

// TestProcessMatchFatal tests the two errors that fail an import.
func TestProcessMatchFatal(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  error
	}{
		{"bad filename", "report.pdf", schema.ErrFilenameFormat},
		{"unknown team", "Home FC - Nowhere Town 1-0.pdf", schema.ErrTeamUnresolved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := schema.Document{Filename: tt.filename, Text: sampleReport}
			_, err := ProcessMatch(context.Background(), doc, sampleRoster(), nil, DefaultProcessOptions())
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestProcessMatchEmptyText tests that an unparseable body still yields a payload.
func TestProcessMatchEmptyText(t *testing.T) {
	doc := schema.Document{Filename: "Home FC - Away FC 0-0.txt"}
	payload, err := ProcessMatch(context.Background(), doc, sampleRoster(), nil, DefaultProcessOptions())
	require.NoError(t, err)
	assert.Empty(t, payload.Players)
	assert.Equal(t, "undated-home-fc-away-fc", payload.MatchID)
	assert.Nil(t, payload.BestPerformers.Home)
	assert.Nil(t, payload.BestPerformers.Away)
}

// TestProcessMatchMinutesGate tests that a raised threshold removes grades.
func TestProcessMatchMinutesGate(t *testing.T) {
	opts := DefaultProcessOptions()
	opts.MinMinutesOutfield = 80
	doc := schema.Document{Filename: "Home FC - Away FC 2-1.pdf", Text: sampleReport}

	payload, err := ProcessMatch(context.Background(), doc, sampleRoster(), nil, opts)
	require.NoError(t, err)
	smith := findPlayer(t, payload, "Cara Smith")
	assert.Nil(t, smith.GameGrade)
	assert.NotEmpty(t, smith.Stats)
}

type mockSource struct {
	mock.Mock
}

var _ contract.DocumentSource = &mockSource{}

func (m *mockSource) Extract(ctx context.Context, path string) (schema.Document, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(schema.Document), args.Error(1)
}

// TestProcessBatch tests ordering and per-file error isolation.
func TestProcessBatch(t *testing.T) {
	src := &mockSource{}
	good := schema.Document{Filename: "Home FC - Away FC 2-1.pdf", Text: sampleReport}
	src.On("Extract", mock.Anything, "a.pdf").Return(good, nil)
	src.On("Extract", mock.Anything, "b.pdf").Return(schema.Document{}, errors.New("unreadable"))
	src.On("Extract", mock.Anything, "c.pdf").Return(schema.Document{Filename: "c.pdf"}, nil)

	paths := []string{"a.pdf", "b.pdf", "c.pdf"}
	for _, workers := range []int{0, 1, 4} {
		results := ProcessBatch(context.Background(), src, paths, sampleRoster(), nil, DefaultProcessOptions(), workers)
		require.Len(t, results, 3)
		for i, r := range results {
			assert.Equal(t, paths[i], r.SourcePath)
		}
		require.NoError(t, results[0].Err)
		assert.NotNil(t, results[0].Payload)
		assert.ErrorContains(t, results[1].Err, "unreadable")
		assert.ErrorIs(t, results[2].Err, schema.ErrFilenameFormat)
	}
}

// TestProcessBatchCanceled tests that a canceled context fails every file.
func TestProcessBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := ProcessBatch(ctx, &mockSource{}, []string{"a.pdf", "b.pdf"}, sampleRoster(), nil, DefaultProcessOptions(), 2)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

// TestOptionsFromConfig tests that config thresholds reach the processor.
func TestOptionsFromConfig(t *testing.T) {
	cfg := &contract.Config{
		MinMinutesOutfield: 20,
		MinMinutesKeeper:   60,
		BestMinMinutes:     50,
		ShortHintThreshold: 15,
	}
	opts := OptionsFromConfig(cfg)
	assert.Equal(t, 20, opts.MinMinutesOutfield)
	assert.Equal(t, 60, opts.MinMinutesKeeper)
	assert.Equal(t, 50, opts.BestMinMinutes)
	assert.Equal(t, 15, opts.Lineup.ShortHintMax)
	assert.Equal(t, 22, opts.Lineup.StarterCap)
}
