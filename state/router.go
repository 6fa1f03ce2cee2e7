package state

import "github.com/smallnest/agentgraph/graph"

// RouteKey is the state key where a supervisor stores its routing
// decision.
const RouteKey = "router"

// Route is a supervisor decision: either finish, or hand off to the named
// member.
type Route struct {
	Done bool   `json:"done"`
	Next string `json:"next"`
}

// Router reads the routing decision from state. A missing or malformed
// entry reads as the zero Route, which routes nowhere.
func Router(s graph.State) Route {
	v, ok := Get(s, RouteKey)
	if !ok {
		return Route{}
	}
	switch r := v.(type) {
	case Route:
		return r
	case map[string]any:
		done, _ := r["done"].(bool)
		next, _ := r["next"].(string)
		return Route{Done: done, Next: next}
	default:
		return Route{}
	}
}

// SetRoute returns a copy of s carrying the routing decision.
func SetRoute(s graph.State, r Route) graph.State {
	return Set(s, RouteKey, map[string]any{"done": r.Done, "next": r.Next})
}
