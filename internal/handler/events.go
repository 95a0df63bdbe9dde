package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/borda-dev/borda/internal/events"
	"github.com/borda-dev/borda/internal/logger"
	"github.com/go-chi/chi/v5"
)

const heartbeatInterval = 30 * time.Second

// BoardEvents subscribes the caller to the board's room over SSE.
// Delivery is best-effort: no acknowledgment, no replay after reconnect.
func (h *Handler) BoardEvents(w http.ResponseWriter, r *http.Request) {
	boardId := chi.URLParam(r, "id")

	if r.Context().Err() != nil {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	client := h.hub.Connect(boardId)
	defer h.hub.Disconnect(client)

	if err := sendEvent(w, rc, events.Event{Type: "connected", Room: boardId, Data: client.Id}); err != nil {
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := r.Context()
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return
			}
			if err := sendEvent(w, rc, event); err != nil {
				logger.Log.Debug("sse client disconnected during send", "client_id", client.Id)
				return
			}

		case <-heartbeat.C:
			// Comment line keeps intermediaries from closing the stream.
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}

		case <-client.Done:
			return

		case <-ctx.Done():
			return
		}
	}
}

func sendEvent(w http.ResponseWriter, rc *http.ResponseController, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
		return err
	}
	return rc.Flush()
}
