// Package graph provides the core execution engine of agentgraph: a small
// interpreter that walks a directed graph of workers, threading a mutable
// shared state and an append-only message history through every
// invocation.
//
// # Core Concepts
//
// A node is either the Start/End sentinel or a Worker, i.e. anything
// satisfying Invoke(ctx, state, task) -> (*Result, error). Edges attach to
// a source node and come in three kinds:
//
//   - direct: one unconditional successor
//   - conditional: the successor is computed from the current state at
//     traversal time; returning nil falls through to the next edge
//   - parallel: fan out to several workers concurrently, then converge on
//     a single successor once every branch has settled
//
// A node may hold several edges of mixed kinds; they are evaluated in
// insertion order and the first edge that yields a target wins.
//
// # Building and Invoking
//
//	g := graph.New()
//	_ = g.AddEdge(graph.Start, research)
//	_ = g.AddConditionalEdge(research, func(state graph.State) graph.Node {
//		if done, _ := state["done"].(bool); done {
//			return graph.End
//		}
//		return write
//	})
//	_ = g.AddEdge(write, graph.End)
//
//	resp, err := g.Invoke(ctx, graph.Request{
//		State: graph.State{"topic": "geese"},
//		Task:  "write a short report",
//	})
//
// Construction is append-only: there is no edge removal or update, and a
// duplicate edge (same target, same condition function, or same fan-out
// shape) is rejected when it is added. Node and per-node edge counts are
// capped so a mis-constructed builder cannot grow a graph without bound.
//
// # Semantics
//
// Traversal serializes sequential workers strictly: a worker starts only
// after its predecessor has fully resolved, including any nested graph it
// runs internally. The only true concurrency is inside a parallel fan-out.
// After a fan-out, branch histories are appended in completion order and
// the branch state is merged per the configured MergeStrategy; the default
// MergeLastResolved keeps the historical last-write-wins behavior, which
// is not deterministic.
//
// A node with no outgoing edges ends the traversal successfully with
// whatever state and history have accumulated. A traversal that exceeds
// the iteration ceiling fails with ErrMaxIterations, which bounds buggy
// conditional cycles without bounding wall-clock time. Nothing is retried
// at the graph level and there is no partial result: Invoke either
// returns a Response or an error naming the failing node or worker.
//
// Each Graph instance runs at most one traversal at a time; concurrent
// Invoke calls on the same instance queue on an internal mutex.
package graph
