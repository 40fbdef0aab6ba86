package nodes

import (
	"strings"

	"github.com/jmalkin/graphrun/pkg/graphrun/registry"
)

// ToolFunc is a named helper callable by node executables.
// Tools take a source text and return a score or count.
type ToolFunc func(input string) int

// tools is the shared tool table. Nodes look helpers up by name so a
// deployment can swap an implementation without touching node code.
var tools = registry.New[string, ToolFunc]()

// RegisterTool adds or replaces a tool under the given name.
func RegisterTool(name string, fn ToolFunc) {
	tools.Register(name, fn)
}

// Tool returns the tool registered under the given name.
func Tool(name string) (ToolFunc, bool) {
	return tools.Get(name)
}

func init() {
	RegisterTool("complexity_score", complexityScore)
	RegisterTool("detect_smells", detectSmells)
}

// complexityScore rates a single function source: shorter is better.
func complexityScore(funcSource string) int {
	length := len(funcSource)

	switch {
	case length < 200:
		return 90
	case length < 500:
		return 70
	default:
		return 40
	}
}

// detectSmells counts obvious problems in a whole source file.
func detectSmells(code string) int {
	issues := 0
	if strings.Contains(code, "TODO") || strings.Contains(code, "FIXME") {
		issues++
	}

	// Long files count as an additional issue.
	if len(strings.Split(code, "\n")) > 200 {
		issues += 2
	}

	return issues
}
