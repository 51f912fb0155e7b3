package scheduler

import (
	"sync/atomic"

	"github.com/polite-betrayal/hexmatch/pkg/hexgame"
)

// matchSlot is one match's scheduler-owned resources: an engine (so
// buffer reuse persists across ticks), an intake buffer, and an
// atomically-swapped state pointer so readers never observe a
// partially-ticked state.
type matchSlot struct {
	id     string
	engine *hexgame.Engine
	buffer *orderBuffer
	state  atomic.Pointer[hexgame.MatchState]
}

func newMatchSlot(s *hexgame.MatchState) *matchSlot {
	slot := &matchSlot{
		id:     s.ID,
		engine: hexgame.NewEngine(),
		buffer: &orderBuffer{},
	}
	slot.state.Store(s)
	return slot
}

// tick drains the buffer and advances the match by one tick,
// installing the returned state. Called only by the scheduler's
// cadence loop, never concurrently for the same slot.
func (m *matchSlot) tick() *hexgame.MatchState {
	cur := m.state.Load()
	if cur.Status != hexgame.StatusActive {
		return cur
	}
	orders := m.buffer.drain()
	next := m.engine.Advance(cur, orders)
	m.state.Store(next)
	return next
}
