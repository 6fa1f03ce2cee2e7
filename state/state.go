package state

import (
	"strings"

	"github.com/smallnest/agentgraph/graph"
)

// Get returns the value at a dot-separated path, descending through
// nested map[string]any levels.
func Get(s graph.State, path string) (any, bool) {
	if s == nil || path == "" {
		return nil, false
	}
	parts := strings.Split(path, ".")
	var current any = map[string]any(s)
	for _, p := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// GetString returns the string at path, or "" when absent or not a
// string.
func GetString(s graph.State, path string) string {
	v, ok := Get(s, path)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

// GetBool returns the bool at path, or false when absent or not a bool.
func GetBool(s graph.State, path string) bool {
	v, ok := Get(s, path)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Has reports whether path resolves to a value.
func Has(s graph.State, path string) bool {
	_, ok := Get(s, path)
	return ok
}

// Set returns a copy of s with the value at path replaced. Maps along the
// traversed path are shallow-copied so the input state is never mutated;
// missing intermediate maps are created. Untraversable intermediates are
// overwritten with fresh maps.
func Set(s graph.State, path string, value any) graph.State {
	if path == "" {
		return s
	}
	parts := strings.Split(path, ".")
	out := setIn(map[string]any(s), parts, value)
	return graph.State(out)
}

func setIn(m map[string]any, parts []string, value any) map[string]any {
	next := make(map[string]any, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	key := parts[0]
	if len(parts) == 1 {
		next[key] = value
		return next
	}
	child, _ := next[key].(map[string]any)
	next[key] = setIn(child, parts[1:], value)
	return next
}

// Delete returns a copy of s with the value at path removed. Deleting a
// missing path returns an equivalent copy.
func Delete(s graph.State, path string) graph.State {
	if s == nil || path == "" {
		return s
	}
	parts := strings.Split(path, ".")
	out := deleteIn(map[string]any(s), parts)
	return graph.State(out)
}

func deleteIn(m map[string]any, parts []string) map[string]any {
	next := make(map[string]any, len(m))
	for k, v := range m {
		next[k] = v
	}
	key := parts[0]
	if len(parts) == 1 {
		delete(next, key)
		return next
	}
	if child, ok := next[key].(map[string]any); ok {
		next[key] = deleteIn(child, parts[1:])
	}
	return next
}

// Clone returns a shallow copy of s. Nested maps are shared.
func Clone(s graph.State) graph.State {
	if s == nil {
		return nil
	}
	out := make(graph.State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
