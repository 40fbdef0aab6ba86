package graphrun

import (
	"fmt"
	"strings"
	"sync"
)

// Graph is a mutable builder for a named collection of node executables
// plus fallback edges. Build it with AddNode and AddEdge, then register
// it with Engine.CreateGraph, after which it must not be modified.
//
// Node insertion order is significant: when no node is literally named
// Start, a run begins at the first node added.
//
// Graph is NOT safe for concurrent building. Construct it from a single
// goroutine, then hand it to the engine.
//
// Example:
//
//	g := graphrun.NewGraph("review").
//	    AddNode("fetch", fetchNode).
//	    AddNode("score", scoreNode).
//	    AddEdge("fetch", "score").
//	    AddEdge("score", graphrun.End)
type Graph struct {
	mu    sync.Mutex
	name  string
	order []string
	nodes map[string]NodeFunc
	edges map[string]string
}

// NewGraph creates an empty graph builder with the given display name.
func NewGraph(name string) *Graph {
	return &Graph{
		name:  name,
		nodes: make(map[string]NodeFunc),
		edges: make(map[string]string),
	}
}

// AddNode adds a named node executable to the graph.
// Returns the graph for method chaining.
//
// Panics if:
//   - id is empty
//   - id is the reserved word "end" (case-insensitive)
//   - id contains whitespace (space, tab, newline)
//   - fn is nil
//   - id already exists in the graph
func (g *Graph) AddNode(id string, fn NodeFunc) *Graph {
	if id == "" {
		panic("graphrun: node ID cannot be empty")
	}

	if strings.EqualFold(id, End) {
		panic("graphrun: node ID cannot be reserved word 'end'")
	}

	if strings.ContainsAny(id, " \t\n\r") {
		panic("graphrun: node ID cannot contain whitespace")
	}

	if fn == nil {
		panic("graphrun: node function cannot be nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[id]; exists {
		panic(fmt.Sprintf("graphrun: duplicate node ID: %s", id))
	}

	g.order = append(g.order, id)
	g.nodes[id] = fn
	return g
}

// AddEdge sets the fallback successor for a node. The fallback is used
// only when the node's directive does not name an explicit next node.
// The target can be a node ID or graphrun.End.
// Returns the graph for method chaining.
//
// Edge targets are not validated here or at registration: a target
// absent from the graph is resolved lazily during execution, where it
// terminates the run gracefully.
func (g *Graph) AddEdge(from, to string) *Graph {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.edges[from] = to
	return g
}

// Name returns the graph's display name.
func (g *Graph) Name() string {
	return g.name
}

// NodeIDs returns the node identifiers in insertion order.
func (g *Graph) NodeIDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// entryPoint selects the start node: the node literally named Start if
// present, otherwise the first node in insertion order.
// Evaluated once, at the beginning of a run.
func (g *Graph) entryPoint() string {
	if _, ok := g.nodes[Start]; ok {
		return Start
	}
	return g.order[0]
}

// node returns the executable for the given ID.
func (g *Graph) node(id string) (NodeFunc, bool) {
	fn, ok := g.nodes[id]
	return fn, ok
}

// fallback returns the static edge target for the given node,
// or "" if the node has no fallback edge.
func (g *Graph) fallback(id string) string {
	return g.edges[id]
}

// isEmpty reports whether the graph has no nodes.
func (g *Graph) isEmpty() bool {
	return len(g.order) == 0
}
