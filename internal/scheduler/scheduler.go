package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/polite-betrayal/hexmatch/pkg/hexgame"
)

// GameConstants are the fixed tuning values get_match_config reports.
type GameConstants struct {
	DefConstant int `json:"def_constant"`
	MaxRounds   int `json:"max_rounds"`
}

var defaultConstants = GameConstants{DefConstant: 25, MaxRounds: 3}

// MatchConfig is the wire shape of get_match_config.
type MatchConfig struct {
	MatchID   string        `json:"match_id"`
	Viewer    string        `json:"viewer"`
	MapRadius int           `json:"map_radius"`
	Constants GameConstants `json:"constants"`
}

// SnapshotSink receives a notification after every tick. The core
// engine has no persistence of its own; a sink is the pluggable
// medium (e.g. a Redis publisher) a deployment wires in.
type SnapshotSink interface {
	Publish(ctx context.Context, matchID string, state *hexgame.MatchState)
}

// Scheduler holds every live match and drives a single fixed-cadence
// loop across all of them, matching the reference "single logical
// task" cooperative model: one goroutine, one tick per interval,
// sequential iteration over ACTIVE matches.
type Scheduler struct {
	mu        sync.RWMutex
	matches   map[string]*matchSlot
	interval  time.Duration
	mapRadius int
	sink      SnapshotSink
}

// New returns a Scheduler with the given tick interval and default
// map radius for newly initialized matches.
func New(interval time.Duration, mapRadius int) *Scheduler {
	return &Scheduler{
		matches:   make(map[string]*matchSlot),
		interval:  interval,
		mapRadius: mapRadius,
	}
}

// SetSnapshotSink wires an optional snapshot/broadcast adapter.
func (s *Scheduler) SetSnapshotSink(sink SnapshotSink) {
	s.sink = sink
}

// Run drives the cadence loop until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tickAll(ctx)
		}
	}
}

func (s *Scheduler) tickAll(ctx context.Context) {
	s.mu.RLock()
	slots := make([]*matchSlot, 0, len(s.matches))
	for _, m := range s.matches {
		slots = append(slots, m)
	}
	s.mu.RUnlock()

	for _, m := range slots {
		before := m.state.Load()
		if before.Status != hexgame.StatusActive {
			continue
		}
		next := m.tick()
		if next.Tick%10 == 0 {
			log.Debug().Str("matchId", m.id).Int("tick", next.Tick).Msg("tick advanced")
		}
		if s.sink != nil {
			s.sink.Publish(ctx, m.id, next)
		}
	}
}

// InitMatch creates a match in WAITING with the two-player default
// seed. Idempotent: a no-op if id already exists.
func (s *Scheduler) InitMatch(id string, initial hexgame.Resources) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.matches[id]; exists {
		return
	}
	state := hexgame.NewTwoPlayerMatch(id, s.mapRadius, initial)
	s.matches[id] = newMatchSlot(state)
}

// StartMatch transitions WAITING -> ACTIVE.
func (s *Scheduler) StartMatch(id string) error {
	s.mu.RLock()
	slot, ok := s.matches[id]
	s.mu.RUnlock()
	if !ok {
		return ErrUnknownMatch
	}
	cur := slot.state.Load()
	if cur.Status != hexgame.StatusWaiting {
		return ErrIllegalTransition
	}
	started := cur.Clone()
	started.Status = hexgame.StatusActive
	slot.state.Store(started)
	return nil
}

// SubmitOrders appends tagged orders to a match's intake buffer and
// returns the accepted count.
func (s *Scheduler) SubmitOrders(id, viewer string, orders []hexgame.Order) (int, error) {
	if len(orders) > maxOrdersPerSubmission {
		return 0, ErrRateLimitExceeded
	}
	s.mu.RLock()
	slot, ok := s.matches[id]
	s.mu.RUnlock()
	if !ok {
		return 0, ErrUnknownMatch
	}
	return slot.buffer.enqueue(viewer, orders), nil
}

// GetState returns viewer's projection of the current state.
func (s *Scheduler) GetState(id, viewer string) (*hexgame.View, error) {
	s.mu.RLock()
	slot, ok := s.matches[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownMatch
	}
	return hexgame.Project(slot.state.Load(), viewer), nil
}

// GetConfig returns match_id, resolved viewer identity, map bounds,
// and the fixed game constants.
func (s *Scheduler) GetConfig(id, viewer string) (MatchConfig, error) {
	s.mu.RLock()
	slot, ok := s.matches[id]
	s.mu.RUnlock()
	if !ok {
		return MatchConfig{}, ErrUnknownMatch
	}
	return MatchConfig{
		MatchID:   id,
		Viewer:    viewer,
		MapRadius: slot.state.Load().MapRadius,
		Constants: defaultConstants,
	}, nil
}
