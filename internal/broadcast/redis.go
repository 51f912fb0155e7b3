// Package broadcast publishes match events to subscribers outside
// the scheduler's process. It is the concrete medium behind the
// SnapshotSink hook the scheduler defines but does not itself need:
// the core engine works with plain in-memory state; this package is
// what a deployment plugs in to fan that state out.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/polite-betrayal/hexmatch/pkg/hexgame"
)

// envelope is the compact event payload published after every tick.
type envelope struct {
	MatchID string          `json:"match_id"`
	Tick    int             `json:"tick"`
	Status  hexgame.Status  `json:"status"`
	Events  []hexgame.Event `json:"events"`
}

// RedisSink publishes a match's post-tick events to a per-match Redis
// pub/sub channel.
type RedisSink struct {
	rdb *redis.Client
}

// NewRedisSink connects to redisURL and returns a ready sink.
func NewRedisSink(redisURL string) (*RedisSink, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisSink{rdb: rdb}, nil
}

// Close releases the underlying connection.
func (s *RedisSink) Close() error {
	return s.rdb.Close()
}

// Channel returns the pub/sub channel name for a match.
func Channel(matchID string) string {
	return "match:" + matchID + ":events"
}

// Publish implements scheduler.SnapshotSink.
func (s *RedisSink) Publish(ctx context.Context, matchID string, state *hexgame.MatchState) {
	if len(state.Events) == 0 {
		return
	}
	payload, err := json.Marshal(envelope{
		MatchID: matchID,
		Tick:    state.Tick,
		Status:  state.Status,
		Events:  state.Events,
	})
	if err != nil {
		log.Error().Err(err).Str("matchId", matchID).Msg("failed to marshal match event envelope")
		return
	}
	if err := s.rdb.Publish(ctx, Channel(matchID), payload).Err(); err != nil {
		log.Warn().Err(err).Str("matchId", matchID).Msg("failed to publish match events")
	}
}
