package api

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// upgrader upgrades log-stream requests to WebSocket connections.
// Cross-origin clients are allowed: the stream is read-only output of
// an already-created run.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamLogs handles GET /api/v1/runs/{id}/logs/stream.
//
// Unknown runs fail with 404 before the upgrade. After the upgrade the
// client receives the full backlog, then live lines as the run emits
// them, until the client disconnects. The subscription is registered
// before the upgrade, so lines emitted during the handshake are queued
// rather than lost.
func (h *Handler) StreamLogs(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("id")

	backlog, sub, err := h.engine.SubscribeLogs(runID)
	if HandleEngineError(w, h.logger, err) {
		return
	}
	defer sub.Unsubscribe()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}
	defer conn.Close()

	for _, line := range backlog {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			return
		}
	}

	// The client never sends application data; reading surfaces
	// close frames and dropped connections.
	disconnected := make(chan struct{})
	go func() {
		defer close(disconnected)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case line, ok := <-sub.C():
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				return
			}
		case <-disconnected:
			return
		}
	}
}
