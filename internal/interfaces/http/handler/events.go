package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/backoffice/backend/internal/infrastructure/notifier"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventsHandler streams change events to clients over Server-Sent Events.
// Each connection gets its own hub subscription; delivery is best-effort and
// a client that reconnects simply misses what it missed.
type EventsHandler struct {
	BaseHandler
	hub       *notifier.Hub
	heartbeat time.Duration
}

// EventsOption configures the events handler
type EventsOption func(*EventsHandler)

// WithHeartbeat sets the keep-alive interval
func WithHeartbeat(interval time.Duration) EventsOption {
	return func(h *EventsHandler) {
		if interval > 0 {
			h.heartbeat = interval
		}
	}
}

// NewEventsHandler creates the SSE events handler
func NewEventsHandler(hub *notifier.Hub, logger *zap.Logger, opts ...EventsOption) *EventsHandler {
	h := &EventsHandler{
		BaseHandler: NewBaseHandler(logger),
		hub:         hub,
		heartbeat:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes mounts the stream endpoint
func (h *EventsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events/stream", h.Stream)
}

// Stream handles GET /api/events/stream. It holds the connection open and
// writes one SSE message per change event until the client disconnects.
func (h *EventsHandler) Stream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	events, cancel := h.hub.Subscribe()
	defer cancel()

	writeEvent(c.Writer, "connected", fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()))
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			writeEvent(c.Writer, "heartbeat", fmt.Sprintf(`{"timestamp":%d}`, time.Now().Unix()))
			c.Writer.Flush()
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("marshal change event", zap.Error(err))
				continue
			}
			writeEvent(c.Writer, event.Name, string(data))
			c.Writer.Flush()
		}
	}
}

// writeEvent writes one SSE frame
func writeEvent(w io.Writer, event, data string) {
	fmt.Fprintf(w, "event: %s\n", event)
	fmt.Fprintf(w, "data: %s\n\n", data)
}
