// path: internal/httpx/events.go
package httpx

import (
	"sync"

	"laserchess/internal/game"
)

// TurnEvent is pushed to every subscriber after a turn is applied.
type TurnEvent struct {
	GameID string          `json:"gameId"`
	Action game.Action     `json:"action"`
	Beam   game.BeamResult `json:"beam"`
	State  game.BoardState `json:"state"`
}

const eventBuffer = 8

// eventHub fans turn events out to websocket subscribers. Sends never
// block: a subscriber that falls more than eventBuffer events behind
// loses events instead of stalling the game.
type eventHub struct {
	mu   sync.Mutex
	subs map[chan TurnEvent]struct{}
}

func newEventHub() *eventHub {
	return &eventHub{subs: make(map[chan TurnEvent]struct{})}
}

func (h *eventHub) subscribe() chan TurnEvent {
	ch := make(chan TurnEvent, eventBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *eventHub) unsubscribe(ch chan TurnEvent) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *eventHub) broadcast(ev TurnEvent) {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	h.mu.Unlock()
}
