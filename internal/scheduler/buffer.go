// Package scheduler owns the set of live matches, drives the
// fixed-cadence tick loop, and buffers orders between ticks.
package scheduler

import (
	"sync"

	"github.com/polite-betrayal/hexmatch/pkg/hexgame"
)

// maxOrdersPerSubmission is the per-call rate limit on submit_orders.
const maxOrdersPerSubmission = 50

// orderBuffer is a per-match, tick-scoped queue of tagged orders.
// Enqueue is safe from any goroutine; Drain is called once per tick
// by the scheduler and is mutually exclusive with Enqueue so a
// submission never lands half in one tick and half in the next.
type orderBuffer struct {
	mu     sync.Mutex
	orders []hexgame.TaggedOrder
}

// enqueue appends orders tagged with player, silently discarding
// anything from the observer identity. It returns the accepted
// count so the caller can report it back to the client.
func (b *orderBuffer) enqueue(player string, orders []hexgame.Order) int {
	if player == hexgame.ObserverIdentity {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, o := range orders {
		b.orders = append(b.orders, hexgame.TaggedOrder{Player: player, Order: o})
	}
	return len(orders)
}

// drain atomically detaches the accumulated orders and resets the
// buffer to empty, so orders arriving mid-swap land in the next
// tick's buffer rather than this one.
func (b *orderBuffer) drain() []hexgame.TaggedOrder {
	b.mu.Lock()
	defer b.mu.Unlock()
	detached := b.orders
	b.orders = nil
	return detached
}
