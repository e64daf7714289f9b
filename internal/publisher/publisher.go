// Package publisher announces graded matches on a Redis stream.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/matchgrade/internal/contract"
	"github.com/huangsam/matchgrade/schema"
	"github.com/redis/go-redis/v9"
)

// streamClient is the part of the Redis client the publisher needs.
type streamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Close() error
}

// RedisStreamPublisher publishes match summaries to a Redis stream.
type RedisStreamPublisher struct {
	client streamClient
	stream string
	now    func() time.Time
}

var _ contract.MatchPublisher = &RedisStreamPublisher{} // Compile-time check

// MatchSummary is the event body written for every graded match.
type MatchSummary struct {
	MatchID  string                   `json:"matchId"`
	Date     string                   `json:"date,omitempty"`
	Round    string                   `json:"round,omitempty"`
	HomeTeam string                   `json:"homeTeam"`
	AwayTeam string                   `json:"awayTeam"`
	Score    string                   `json:"score"`
	Graded   int                      `json:"graded"`
	Players  int                      `json:"players"`
	BestHome *schema.PerformerSummary `json:"bestHome"`
	BestAway *schema.PerformerSummary `json:"bestAway"`
}

// NewRedisStreamPublisher connects to redisURL and publishes to stream.
func NewRedisStreamPublisher(redisURL, stream string) (*RedisStreamPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return newPublisher(client, stream), nil
}

func newPublisher(client streamClient, stream string) *RedisStreamPublisher {
	if stream == "" {
		stream = contract.DefaultPublishStream
	}
	return &RedisStreamPublisher{client: client, stream: stream, now: time.Now}
}

// Summarize reduces a payload to the fields consumers care about.
func Summarize(payload *schema.MatchPayload) MatchSummary {
	graded := 0
	for _, p := range payload.Players {
		if p.GameGrade != nil && p.GameGrade.Overall10 != nil {
			graded++
		}
	}
	return MatchSummary{
		MatchID:  payload.MatchID,
		Date:     payload.Date,
		Round:    payload.Round,
		HomeTeam: payload.HomeTeam,
		AwayTeam: payload.AwayTeam,
		Score:    payload.Score,
		Graded:   graded,
		Players:  len(payload.Players),
		BestHome: payload.BestPerformers.Home,
		BestAway: payload.BestPerformers.Away,
	}
}

// PublishMatch appends the match summary to the stream.
func (p *RedisStreamPublisher) PublishMatch(ctx context.Context, payload *schema.MatchPayload) error {
	data, err := json.Marshal(Summarize(payload))
	if err != nil {
		return err
	}
	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"matchId":   payload.MatchID,
			"data":      string(data),
			"timestamp": p.now().Unix(),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publish %s: %w", payload.MatchID, err)
	}
	return nil
}

// Close closes the Redis connection.
func (p *RedisStreamPublisher) Close() error {
	return p.client.Close()
}
