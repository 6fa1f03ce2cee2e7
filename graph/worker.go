package graph

import "context"

const (
	// Start is the sentinel node where traversal begins by default.
	Start = "START"

	// End is the sentinel node that terminates a traversal.
	End = "END"
)

// Node is a position in the graph: the Start or End sentinel, a string
// registered as an edge source, or a Worker. Workers are compared by
// identity, so two workers with the same name are distinct nodes; worker
// implementations should therefore be pointer values.
type Node = any

// State is the caller-owned value threaded through a traversal. The engine
// treats it as opaque: workers receive the current state and may return a
// replacement, which the engine adopts wholesale without any field-level
// merge.
type State = map[string]any

// Message is a single entry in the traversal history.
type Message struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Result is what a worker invocation produces. A nil State means the state
// is unchanged; an empty History means no new messages.
type Result struct {
	State   State
	History []Message
}

// Worker is anything invocable by the graph engine: a single model-call
// agent or a composite built from another graph. Invoke receives the
// current state and the task and returns the updated state plus the
// messages it emitted.
type Worker interface {
	Name() string
	Invoke(ctx context.Context, state State, task string) (*Result, error)
}

// FuncWorker adapts a plain function to the Worker contract.
type FuncWorker struct {
	name string
	fn   func(ctx context.Context, state State, task string) (*Result, error)
}

// WorkerFunc wraps fn as a Worker with the given name.
func WorkerFunc(name string, fn func(ctx context.Context, state State, task string) (*Result, error)) *FuncWorker {
	return &FuncWorker{name: name, fn: fn}
}

// Name returns the worker name.
func (w *FuncWorker) Name() string { return w.name }

// Invoke calls the wrapped function.
func (w *FuncWorker) Invoke(ctx context.Context, state State, task string) (*Result, error) {
	return w.fn(ctx, state, task)
}
