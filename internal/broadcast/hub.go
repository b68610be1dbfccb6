// Package broadcast delivers outcome and sync events to connected observers.
// Delivery is fire-and-forget: Broadcast never blocks and never fails the
// caller. Durable delivery is the outbox's job, not the hub's.
package broadcast

import (
	"log/slog"
	"sync"
)

// Event is a broadcastable notification.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Broadcaster delivers events to connected observers.
type Broadcaster interface {
	Broadcast(event Event)
}

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// that falls this far behind starts losing events rather than slowing the
// hub down.
const subscriberBuffer = 16

// Hub is an in-memory Broadcaster fanning events out to subscriber channels.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan Event]struct{}
	logger *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[chan Event]struct{}),
		logger: logger,
	}
}

// Subscribe registers an observer. The returned cancel function must be
// called when the observer disconnects.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}

	return ch, cancel
}

// Broadcast delivers the event to every subscriber without blocking. Events
// to full subscriber channels are dropped.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- event:
		default:
			if h.logger != nil {
				h.logger.Warn("dropping event for slow subscriber",
					slog.String("event_type", event.Type),
				)
			}
		}
	}
}

// Close disconnects every subscriber. Used during shutdown so SSE streams
// terminate instead of waiting out their request contexts.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}

// SubscriberCount returns the number of connected observers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
