package nodes

import (
	"github.com/jmalkin/graphrun/pkg/graphrun"
	"github.com/jmalkin/graphrun/pkg/graphrun/registry"
)

// Resolver maps user-supplied node names to known, safe executables.
//
// The transport layer resolves every node name in a graph-creation
// request through a Resolver before the engine sees it; user input
// only ever selects from this fixed table, it never supplies code.
type Resolver struct {
	reg *registry.Registry[string, graphrun.NodeFunc]
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{reg: registry.New[string, graphrun.NodeFunc]()}
}

// Register adds or replaces an executable under the given name.
func (r *Resolver) Register(name string, fn graphrun.NodeFunc) {
	r.reg.Register(name, fn)
}

// Resolve returns the executable registered under the given name.
func (r *Resolver) Resolve(name string) (graphrun.NodeFunc, bool) {
	return r.reg.Get(name)
}

// Names returns the known node names in registration order.
func (r *Resolver) Names() []string {
	return r.reg.Keys()
}

// DefaultResolver returns a resolver preloaded with the built-in
// code-review nodes under their wire names.
func DefaultResolver() *Resolver {
	r := NewResolver()
	r.Register(NameExtractFunctions, ExtractFunctions)
	r.Register(NameCheckComplexity, CheckComplexity)
	r.Register(NameDetectIssues, DetectIssues)
	r.Register(NameSuggestImprovements, SuggestImprovements)
	return r
}
