package nodes

import "github.com/jmalkin/graphrun/pkg/graphrun"

// State values arrive from JSON request bodies, so numbers show up as
// float64 and earlier nodes may have stored native Go types. These
// helpers absorb both.

func stringValue(s graphrun.State, key string) string {
	v, _ := s[key].(string)
	return v
}

func floatValue(s graphrun.State, key string, def float64) float64 {
	switch v := s[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

func intValue(s graphrun.State, key string, def int) int {
	switch v := s[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

func stringsValue(s graphrun.State, key string) []string {
	switch v := s[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// note appends a human-readable line to the state's own "log" list,
// the workflow's data product, distinct from the run's lifecycle log.
func note(s graphrun.State, line string) {
	s["log"] = append(stringsValue(s, "log"), line)
}
