package graph

import (
	"fmt"
	"sync"

	"github.com/smallnest/agentgraph/log"
)

const (
	// DefaultMaxNodes caps the number of distinct source nodes per graph.
	DefaultMaxNodes = 64

	// DefaultMaxEdgesPerNode caps the edges registered on one source node.
	DefaultMaxEdgesPerNode = 16

	// DefaultMaxIterations caps the number of traversal steps per Invoke.
	DefaultMaxIterations = 100
)

// MergeStrategy selects how branch states are combined after a parallel
// fan-out.
type MergeStrategy int

const (
	// MergeLastResolved adopts the state of the branch that finished
	// last. Completion order is not deterministic, so later-resolving
	// branches silently overwrite earlier ones. This mirrors the
	// historical behavior and is the default.
	MergeLastResolved MergeStrategy = iota

	// MergeFirstDeclared adopts the state of the first branch in declared
	// order that returned one, independent of completion timing.
	MergeFirstDeclared

	// MergeReduce combines branch states with a caller-supplied Reducer.
	MergeReduce
)

// BranchResult is one settled branch of a parallel fan-out, handed to a
// Reducer in completion order.
type BranchResult struct {
	// Worker that produced the result.
	Worker Worker

	// Index is the branch position in the declared target list.
	Index int

	// State returned by the branch; nil if the branch left it unchanged.
	State State

	// History emitted by the branch.
	History []Message
}

// Reducer merges the settled branches of a parallel fan-out into the next
// current state.
type Reducer func(current State, results []BranchResult) (State, error)

// Graph is a mutable collection of directed edges keyed by source node. It
// is built once through the Add* calls and then invoked; the edge map is
// read-only during traversal. A mutex serializes Invoke so concurrent
// calls on the same instance queue rather than interleave.
type Graph struct {
	mu    sync.Mutex
	edges map[Node][]edge

	// sources keeps source registration order for visualization.
	sources []Node

	logger   log.Logger
	maxNodes int
	maxEdges int
	maxIters int
	merge    MergeStrategy
	reducer  Reducer
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger injects the logging capability. The default is a no-op
// logger.
func WithLogger(logger log.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithMaxNodes overrides the source-node cap.
func WithMaxNodes(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.maxNodes = n
		}
	}
}

// WithMaxEdgesPerNode overrides the per-node edge cap.
func WithMaxEdgesPerNode(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.maxEdges = n
		}
	}
}

// WithMaxIterations overrides the traversal iteration ceiling.
func WithMaxIterations(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.maxIters = n
		}
	}
}

// WithMergeStrategy selects how parallel branch states are merged.
func WithMergeStrategy(s MergeStrategy) Option {
	return func(g *Graph) {
		g.merge = s
	}
}

// WithReducer installs a custom parallel merge reducer and implies
// MergeReduce.
func WithReducer(r Reducer) Option {
	return func(g *Graph) {
		if r != nil {
			g.merge = MergeReduce
			g.reducer = r
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		edges:    make(map[Node][]edge),
		logger:   &log.NoOpLogger{},
		maxNodes: DefaultMaxNodes,
		maxEdges: DefaultMaxEdgesPerNode,
		maxIters: DefaultMaxIterations,
		merge:    MergeLastResolved,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddEdge registers a direct edge from one node to another.
func (g *Graph) AddEdge(from, to Node) error {
	if err := validNode(from); err != nil {
		return fmt.Errorf("add edge: from: %w", err)
	}
	if err := validNode(to); err != nil {
		return fmt.Errorf("add edge: to: %w", err)
	}
	return g.addEdge(from, edge{kind: edgeDirect, to: to})
}

// AddConditionalEdge registers an edge whose target is computed from the
// current state at traversal time.
func (g *Graph) AddConditionalEdge(from Node, fn ConditionFunc) error {
	if err := validNode(from); err != nil {
		return fmt.Errorf("add conditional edge: from: %w", err)
	}
	if fn == nil {
		return fmt.Errorf("add conditional edge: %w: condition function is nil", ErrInvalidNode)
	}
	return g.addEdge(from, edge{kind: edgeConditional, cond: fn, condID: funcID(fn)})
}

// AddParallelEdges registers a fan-out edge: every node in targets runs
// concurrently, then traversal converges on next. A nil next converges on
// End. A string next that is not yet registered is tolerated, because
// builders may add edges out of dependency order; it is logged as a
// warning.
func (g *Graph) AddParallelEdges(from Node, targets []Node, next Node) error {
	if err := validNode(from); err != nil {
		return fmt.Errorf("add parallel edges: from: %w", err)
	}
	if len(targets) == 0 {
		return fmt.Errorf("add parallel edges: %w: targets must be a non-empty list", ErrInvalidNode)
	}
	for i, t := range targets {
		if err := validNode(t); err != nil {
			return fmt.Errorf("add parallel edges: target %d: %w", i, err)
		}
	}
	if next == nil {
		next = End
	} else if err := validNode(next); err != nil {
		return fmt.Errorf("add parallel edges: next: %w", err)
	}
	if s, ok := next.(string); ok && s != Start && s != End && !g.isSource(next) {
		g.safeLog(func() {
			g.logger.Warn("parallel edges from %s reference next node %q before it is registered", nodeName(from), s)
		})
	}
	return g.addEdge(from, edge{kind: edgeParallel, targets: targets, next: next})
}

// addEdge appends e to from's edge list, enforcing caps and per-kind
// duplicate rejection.
func (g *Graph) addEdge(from Node, e edge) error {
	list, known := g.edges[from]
	if !known && len(g.edges) >= g.maxNodes {
		return fmt.Errorf("%w: at most %d source nodes", ErrNodeLimit, g.maxNodes)
	}
	if len(list) >= g.maxEdges {
		return fmt.Errorf("%w: at most %d edges from %s", ErrEdgeLimit, g.maxEdges, nodeName(from))
	}
	for _, existing := range list {
		if existing.equal(e) {
			return fmt.Errorf("%w: %s edge already registered on %s", ErrDuplicateEdge, e.kind, nodeName(from))
		}
	}
	if !known {
		g.sources = append(g.sources, from)
	}
	g.edges[from] = append(list, e)
	return nil
}

// isSource reports whether n is registered as an edge source.
func (g *Graph) isSource(n Node) bool {
	_, ok := g.edges[n]
	return ok
}

// exists reports whether n is a valid traversal target: the sentinels are
// always valid, other strings only once they appear as a source key, and
// workers carry their own behavior so they are always valid.
func (g *Graph) exists(n Node) bool {
	switch v := n.(type) {
	case nil:
		return false
	case string:
		return v == Start || v == End || g.isSource(n)
	case Worker:
		return true
	default:
		return false
	}
}

// validNode rejects nil and values that are neither strings nor workers.
func validNode(n Node) error {
	switch n.(type) {
	case nil:
		return fmt.Errorf("%w: node is nil", ErrInvalidNode)
	case string, Worker:
		return nil
	default:
		return fmt.Errorf("%w: node must be a string or a Worker, got %T", ErrInvalidNode, n)
	}
}

// nodeName renders a node for logs and error messages.
func nodeName(n Node) string {
	switch v := n.(type) {
	case nil:
		return "<nil>"
	case string:
		return v
	case Worker:
		return v.Name()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// safeLog runs a logging call and swallows panics so a faulty logger can
// never fail a traversal.
func (g *Graph) safeLog(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
