package state

import (
	"reflect"

	"github.com/smallnest/agentgraph/graph"
)

// Predicate is a pure test over a snapshot of state, used as routing and
// lifecycle glue inside workers and conditional edges.
type Predicate func(s graph.State) bool

// Equals is true when the value at path deep-equals want.
func Equals(path string, want any) Predicate {
	return func(s graph.State) bool {
		got, ok := Get(s, path)
		if !ok {
			return false
		}
		return reflect.DeepEqual(got, want)
	}
}

// NotEmpty is true when path resolves to a value that is not nil, "", an
// empty slice or an empty map.
func NotEmpty(path string) Predicate {
	return func(s graph.State) bool {
		v, ok := Get(s, path)
		if !ok || v == nil {
			return false
		}
		switch rv := reflect.ValueOf(v); rv.Kind() {
		case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
			return rv.Len() > 0
		default:
			return true
		}
	}
}

// All is true when every predicate holds.
func All(preds ...Predicate) Predicate {
	return func(s graph.State) bool {
		for _, p := range preds {
			if !p(s) {
				return false
			}
		}
		return true
	}
}

// Any is true when at least one predicate holds.
func Any(preds ...Predicate) Predicate {
	return func(s graph.State) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}

// Not negates a predicate.
func Not(p Predicate) Predicate {
	return func(s graph.State) bool {
		return !p(s)
	}
}
