// Package nodes provides the built-in node executables: a code-review
// workflow that extracts functions from source, scores their
// complexity, detects smells, and loops on suggestions until a quality
// threshold is met. It also provides the Resolver that maps
// user-supplied node names to these executables.
package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmalkin/graphrun/pkg/graphrun"
)

// Wire names for the built-in nodes, as accepted by the graph-creation API.
const (
	NameExtractFunctions    = "extract_functions"
	NameCheckComplexity     = "check_complexity"
	NameDetectIssues        = "detect_issues"
	NameSuggestImprovements = "suggest_improvements"
)

// ExtractFunctions splits state["code"] into function definitions and
// stores them under state["functions"].
func ExtractFunctions(ctx context.Context, s graphrun.State) (graphrun.Directive, error) {
	code := stringValue(s, "code")

	parts := strings.Split(code, "def ")
	functions := make([]string, 0, len(parts))
	for _, p := range parts[1:] {
		functions = append(functions, "def "+strings.TrimSpace(p))
	}

	s["functions"] = functions
	note(s, fmt.Sprintf("Extracted %d functions", len(functions)))

	return graphrun.Directive{}, nil
}

// CheckComplexity scores every extracted function and stores the
// average under state["complexity_score"]. When the average falls
// below state["complexity_threshold"] (default 80) it branches
// straight to the suggestions node.
func CheckComplexity(ctx context.Context, s graphrun.State) (graphrun.Directive, error) {
	score := tools.MustGet("complexity_score")

	var sum int
	funcs := stringsValue(s, "functions")
	for _, f := range funcs {
		sum += score(f)
	}

	avg := 100.0
	if len(funcs) > 0 {
		avg = float64(sum) / float64(len(funcs))
	}

	s["complexity_score"] = avg
	note(s, fmt.Sprintf("Avg complexity score: %g", avg))

	if avg < floatValue(s, "complexity_threshold", 80) {
		return graphrun.Directive{Next: NameSuggestImprovements}, nil
	}

	return graphrun.Directive{}, nil
}

// DetectIssues runs smell detection over the whole source and stores
// the count under state["issues"].
func DetectIssues(ctx context.Context, s graphrun.State) (graphrun.Directive, error) {
	detect := tools.MustGet("detect_smells")

	issues := detect(stringValue(s, "code"))
	s["issues"] = issues
	note(s, fmt.Sprintf("Detected %d issues", issues))

	return graphrun.Directive{}, nil
}

// SuggestImprovements appends suggestions derived from the findings so
// far and bumps state["quality_score"]. While the quality score stays
// below state["quality_threshold"] (default 85) it branches back to
// the complexity check, forming the improvement loop.
func SuggestImprovements(ctx context.Context, s graphrun.State) (graphrun.Directive, error) {
	var suggestions []string

	if intValue(s, "issues", 0) > 0 {
		suggestions = append(suggestions, "Remove TODO/FIXME and split large functions.")
	}
	if floatValue(s, "complexity_score", 100) < 80 {
		suggestions = append(suggestions, "Refactor long functions into smaller ones.")
	}

	s["suggestions"] = append(stringsValue(s, "suggestions"), suggestions...)

	quality := floatValue(s, "quality_score", 50) + 15
	if quality > 100 {
		quality = 100
	}
	s["quality_score"] = quality

	note(s, fmt.Sprintf("Suggested %d improvements, quality=%g", len(suggestions), quality))

	if quality < floatValue(s, "quality_threshold", 85) {
		return graphrun.Directive{Next: NameCheckComplexity}, nil
	}

	return graphrun.Directive{}, nil
}

// ReviewGraph builds the built-in code-review graph: the four nodes
// chained by fallback edges, terminating at the end sentinel.
func ReviewGraph() *graphrun.Graph {
	return graphrun.NewGraph("code_review_sample").
		AddNode(NameExtractFunctions, ExtractFunctions).
		AddNode(NameCheckComplexity, CheckComplexity).
		AddNode(NameDetectIssues, DetectIssues).
		AddNode(NameSuggestImprovements, SuggestImprovements).
		AddEdge(NameExtractFunctions, NameCheckComplexity).
		AddEdge(NameCheckComplexity, NameDetectIssues).
		AddEdge(NameDetectIssues, NameSuggestImprovements).
		AddEdge(NameSuggestImprovements, graphrun.End)
}
