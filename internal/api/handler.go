// Package api exposes the engine over HTTP: graph creation, run
// dispatch, run status, and a WebSocket log stream per run.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmalkin/graphrun/pkg/graphrun"
	"github.com/jmalkin/graphrun/pkg/graphrun/nodes"
)

// Handler holds the API's dependencies.
type Handler struct {
	engine   *graphrun.Engine
	resolver *nodes.Resolver
	logger   *slog.Logger
}

// Config configures a Handler.
type Config struct {
	Engine   *graphrun.Engine
	Resolver *nodes.Resolver
	Logger   *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		engine:   cfg.Engine,
		resolver: cfg.Resolver,
		logger:   logger,
	}
}

// CreateGraph handles POST /api/v1/graphs.
//
// Node names are resolved against the server's fixed node table; a
// request naming an unknown node is rejected. User input selects
// executables, it never supplies them.
func (h *Handler) CreateGraph(w http.ResponseWriter, r *http.Request) {
	var req CreateGraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if len(req.Nodes) == 0 {
		BadRequest(w, "graph needs at least one node")
		return
	}

	g := graphrun.NewGraph(req.Name)
	seen := make(map[string]bool, len(req.Nodes))
	for _, name := range req.Nodes {
		if seen[name] {
			BadRequest(w, fmt.Sprintf("duplicate node %q", name))
			return
		}
		seen[name] = true

		fn, ok := h.resolver.Resolve(name)
		if !ok {
			BadRequest(w, fmt.Sprintf("unknown node %q", name))
			return
		}
		g.AddNode(name, fn)
	}
	for from, to := range req.Edges {
		g.AddEdge(from, to)
	}

	graphID, err := h.engine.CreateGraph(g)
	if HandleEngineError(w, h.logger, err) {
		return
	}

	JSON(w, http.StatusCreated, CreateGraphResponse{GraphID: graphID})
}

// CreateRun handles POST /api/v1/graphs/{id}/runs.
// The response is returned before the run executes.
func (h *Handler) CreateRun(w http.ResponseWriter, r *http.Request) {
	graphID := r.PathValue("id")

	var req CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	runID, err := h.engine.CreateRun(graphID, req.State)
	if HandleEngineError(w, h.logger, err) {
		return
	}

	JSON(w, http.StatusAccepted, CreateRunResponse{RunID: runID})
}

// GetRun handles GET /api/v1/runs/{id}.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	snap, err := h.engine.GetRun(r.PathValue("id"))
	if HandleEngineError(w, h.logger, err) {
		return
	}

	JSON(w, http.StatusOK, RunStatusResponse{
		RunID:    snap.RunID,
		GraphID:  snap.GraphID,
		State:    snap.State,
		Logs:     snap.Logs,
		Finished: snap.Finished,
	})
}
