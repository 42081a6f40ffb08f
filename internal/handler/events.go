package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/rahalah/travel-gateway/internal/chat"
	"github.com/rahalah/travel-gateway/internal/session"
	"github.com/rahalah/travel-gateway/pkg/logger"
	"github.com/rahalah/travel-gateway/pkg/metrics"
)

// EventsHandler streams state-changed notifications over SSE so the browser
// can redraw after every completed turn without polling.
type EventsHandler struct {
	registry    *session.Registry
	broadcaster *chat.Broadcaster
	logger      *logger.Logger
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(reg *session.Registry, bc *chat.Broadcaster, log *logger.Logger) *EventsHandler {
	return &EventsHandler{
		registry:    reg,
		broadcaster: bc,
		logger:      log,
	}
}

// heartbeatEvent keeps idle SSE connections alive.
type heartbeatEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// Stream handles GET /api/sessions/{id}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sess, ok := lookupSession(w, r, h.registry)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	metrics.IncrementSSEConnections()
	defer metrics.DecrementSSEConnections()

	updates, cancel := h.broadcaster.Subscribe(sess.ID())
	defer cancel()

	// The current state first, so a reconnecting client catches up.
	sendSSEEvent(w, flusher, "state", stateResponse(sess.Snapshot()))

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	done := r.Context().Done()
	for {
		select {
		case <-done:
			h.logger.Info("SSE client disconnected", zap.String("session_id", sess.ID()))
			return

		case snap := <-updates:
			sendSSEEvent(w, flusher, "state", stateResponse(snap))

		case <-heartbeat.C:
			sendSSEEvent(w, flusher, "heartbeat", heartbeatEvent{Timestamp: time.Now()})
		}
	}
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "event: %s\n", event)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
	flusher.Flush()

	return nil
}
