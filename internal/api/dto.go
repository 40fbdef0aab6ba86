package api

import "github.com/jmalkin/graphrun/pkg/graphrun"

// CreateGraphRequest is the body of POST /api/v1/graphs.
// Nodes are names resolved against the server's node table; edges map
// a node to its fallback successor (a node name or "end").
type CreateGraphRequest struct {
	Name  string            `json:"name"`
	Nodes []string          `json:"nodes"`
	Edges map[string]string `json:"edges,omitempty"`
}

// CreateGraphResponse is the body returned on graph creation.
type CreateGraphResponse struct {
	GraphID string `json:"graph_id"`
}

// CreateRunRequest is the body of POST /api/v1/graphs/{id}/runs.
type CreateRunRequest struct {
	State graphrun.State `json:"state"`
}

// CreateRunResponse is the body returned on run creation.
// The run executes in the background; poll the run resource or attach
// to the log stream to observe it.
type CreateRunResponse struct {
	RunID string `json:"run_id"`
}

// RunStatusResponse is the body of GET /api/v1/runs/{id}.
type RunStatusResponse struct {
	RunID    string         `json:"run_id"`
	GraphID  string         `json:"graph_id"`
	State    graphrun.State `json:"state"`
	Logs     []string       `json:"logs"`
	Finished bool           `json:"finished"`
}
