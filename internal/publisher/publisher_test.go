package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	added  []*redis.XAddArgs
	err    error
	closed bool
}

func (f *fakeClient) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.added = append(f.added, a)
	return redis.NewStringResult("1-0", f.err)
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func grade(v float64) *schema.GradeResult {
	return &schema.GradeResult{Overall10: &v}
}

func samplePayload() *schema.MatchPayload {
	return &schema.MatchPayload{
		MatchID:  "2026-03-12-home-fc-away-fc",
		Date:     "2026-03-12",
		HomeTeam: "Home FC",
		AwayTeam: "Away FC",
		Score:    "2-1",
		Players: []schema.PlayerRecord{
			{Name: "A", GameGrade: grade(7.5)},
			{Name: "B"},
			{Name: "C", GameGrade: &schema.GradeResult{}},
		},
		BestPerformers: schema.BestPerformers{
			Home: &schema.PerformerSummary{PlayerID: "p-a", Name: "A", GameGrade: grade(7.5)},
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(samplePayload())
	assert.Equal(t, "2026-03-12-home-fc-away-fc", s.MatchID)
	assert.Equal(t, 3, s.Players)
	assert.Equal(t, 1, s.Graded)
	require.NotNil(t, s.BestHome)
	assert.Equal(t, "p-a", s.BestHome.PlayerID)
	assert.Nil(t, s.BestAway)
}

func TestPublishMatch(t *testing.T) {
	client := &fakeClient{}
	p := newPublisher(client, "")
	p.now = func() time.Time { return time.Unix(1700000000, 0) }

	require.NoError(t, p.PublishMatch(context.Background(), samplePayload()))
	require.Len(t, client.added, 1)

	args := client.added[0]
	assert.Equal(t, contract.DefaultPublishStream, args.Stream)
	values, ok := args.Values.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2026-03-12-home-fc-away-fc", values["matchId"])
	assert.Equal(t, int64(1700000000), values["timestamp"])

	var decoded MatchSummary
	require.NoError(t, json.Unmarshal([]byte(values["data"].(string)), &decoded))
	assert.Equal(t, "Home FC", decoded.HomeTeam)
	assert.Equal(t, 1, decoded.Graded)

	require.NoError(t, p.Close())
	assert.True(t, client.closed)
}

func TestPublishMatchError(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	p := newPublisher(client, "custom:stream")

	err := p.PublishMatch(context.Background(), samplePayload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2026-03-12-home-fc-away-fc")
	assert.Equal(t, "custom:stream", client.added[0].Stream)
}

func TestNewRedisStreamPublisherBadURL(t *testing.T) {
	_, err := NewRedisStreamPublisher("localhost:6379", "s")
	assert.Error(t, err)
}
