package graph

import "reflect"

// ConditionFunc computes the successor node from the current state. It is
// called once per visit to its source node. Returning nil means "no route"
// and lets evaluation fall through to the next edge in insertion order.
type ConditionFunc func(state State) Node

type edgeKind int

const (
	edgeDirect edgeKind = iota
	edgeConditional
	edgeParallel
)

func (k edgeKind) String() string {
	switch k {
	case edgeDirect:
		return "direct"
	case edgeConditional:
		return "conditional"
	case edgeParallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// edge is the tagged union attached to a source node. Exactly the fields
// for its kind are set.
type edge struct {
	kind edgeKind

	// direct
	to Node

	// conditional
	cond   ConditionFunc
	condID uintptr

	// parallel
	targets []Node
	next    Node
}

// equal reports whether two edges are duplicates per-kind: same target for
// direct, same function identity for conditional, same order-sensitive
// (targets, next) pair for parallel.
func (e edge) equal(other edge) bool {
	if e.kind != other.kind {
		return false
	}
	switch e.kind {
	case edgeDirect:
		return e.to == other.to
	case edgeConditional:
		return e.condID == other.condID
	case edgeParallel:
		if e.next != other.next || len(e.targets) != len(other.targets) {
			return false
		}
		for i := range e.targets {
			if e.targets[i] != other.targets[i] {
				return false
			}
		}
		return true
	}
	return false
}

func funcID(fn ConditionFunc) uintptr {
	return reflect.ValueOf(fn).Pointer()
}
