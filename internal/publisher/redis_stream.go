// Package publisher announces validated possession tables on a Redis stream
// for downstream regression consumers.
package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// PossessionsStream is the stream downstream RAPM consumers read from.
const PossessionsStream = "possessions.ready.basketball_nba"

// GameSummary is the stream payload for one validated game.
type GameSummary struct {
	GameID        string `json:"game_id"`
	HomeTeamID    int64  `json:"home_team_id"`
	VisitorTeamID int64  `json:"visitor_team_id"`
	HomePoints    int    `json:"home_points"`
	VisitorPoints int    `json:"visitor_points"`
	Possessions   int    `json:"possessions"`
	BoxSource     string `json:"box_source"`
}

// RedisPublisher publishes pipeline events to Redis streams.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis stream publisher.
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{client: client}, nil
}

// Close closes the Redis connection.
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishPossessionsReady announces that a game's possession table passed
// validation and is available in the store.
func (rp *RedisPublisher) PublishPossessionsReady(ctx context.Context, summary GameSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: PossessionsStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
