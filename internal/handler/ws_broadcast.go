package handler

import (
	"context"

	"github.com/polite-betrayal/hexmatch/pkg/hexgame"
)

// Publish implements scheduler.SnapshotSink, pushing a tick's events to
// every WebSocket connection subscribed to the match.
func (h *Hub) Publish(ctx context.Context, matchID string, state *hexgame.MatchState) {
	if len(state.Events) == 0 {
		return
	}
	eventType := EventTickAdvanced
	if state.Status == hexgame.StatusFinished {
		eventType = EventMatchEnded
	}
	h.BroadcastToMatch(matchID, WSEvent{
		Type:    eventType,
		MatchID: matchID,
		Data: map[string]any{
			"tick":   state.Tick,
			"status": state.Status,
			"events": state.Events,
		},
	})
}
