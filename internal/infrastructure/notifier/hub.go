// Package notifier implements the change-notification fan-out: a publish-only
// side channel carrying one message per successful mutation to whichever
// listeners are attached at that moment.
package notifier

import (
	"sync"

	"github.com/backoffice/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultBufferSize is the per-subscriber channel depth. A subscriber that
// falls this far behind starts losing events; delivery is best-effort only.
const DefaultBufferSize = 64

// Hub is an in-process fan-out of change events. Publish never blocks and
// never fails the caller: with no subscribers it is a no-op, and a full
// subscriber buffer drops the event for that subscriber alone.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]chan shared.ChangeEvent
	nextID uint64
	buffer int
	closed bool
	logger *zap.Logger
}

// HubOption configures a Hub
type HubOption func(*Hub)

// WithBufferSize sets the per-subscriber channel depth
func WithBufferSize(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// WithLogger sets the hub logger
func WithLogger(logger *zap.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

// NewHub creates a change-event hub
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		subs:   make(map[uint64]chan shared.ChangeEvent),
		buffer: DefaultBufferSize,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish broadcasts the event to all current subscribers without blocking.
// The mutation is already durable when this runs, so dropped events cost a
// dashboard refresh, never data.
func (h *Hub) Publish(event shared.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}
	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			h.logger.Warn("change event dropped for slow subscriber",
				zap.String("event", event.Name),
				zap.Uint64("subscriber", id),
			)
		}
	}
}

// Subscribe attaches a listener and returns its event channel plus a cancel
// function. The channel is closed on cancel or hub shutdown. Events published
// before Subscribe are not replayed.
func (h *Hub) Subscribe() (<-chan shared.ChangeEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan shared.ChangeEvent, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// SubscriberCount returns the number of attached subscribers
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close shuts the hub down and closes every subscriber channel
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// Ensure Hub implements ChangeNotifier
var _ shared.ChangeNotifier = (*Hub)(nil)
