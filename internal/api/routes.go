package api

import "net/http"

// RegisterRoutes registers all API routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	mux.Handle("POST /api/v1/graphs", chain(http.HandlerFunc(h.CreateGraph)))
	mux.Handle("POST /api/v1/graphs/{id}/runs", chain(http.HandlerFunc(h.CreateRun)))
	mux.Handle("GET /api/v1/runs/{id}", chain(http.HandlerFunc(h.GetRun)))

	// The stream route skips the logging middleware: its response
	// wrapper hides the Hijacker the WebSocket upgrade needs.
	mux.Handle("GET /api/v1/runs/{id}/logs/stream", Recovery(h.logger)(http.HandlerFunc(h.StreamLogs)))
}
