package prebuilt

import (
	"context"
	"fmt"

	"github.com/smallnest/agentgraph/graph"
)

// Pipe chains workers into a linear graph:
// START -> w1 -> w2 -> ... -> wn -> END. A Pipe is itself a Worker, so
// pipes nest inside other architectures.
type Pipe struct {
	name  string
	graph *graph.Graph
}

var _ graph.Worker = (*Pipe)(nil)

// NewPipe builds the linear graph once. Graph options (logger, caps,
// merge strategy) pass through to the underlying graph.
func NewPipe(name string, workers []graph.Worker, opts ...graph.Option) (*Pipe, error) {
	if name == "" {
		return nil, fmt.Errorf("pipe name must not be empty")
	}
	if len(workers) == 0 {
		return nil, fmt.Errorf("pipe %q: at least one worker is required", name)
	}

	g := graph.New(opts...)
	prev := graph.Node(graph.Start)
	for i, w := range workers {
		if w == nil {
			return nil, fmt.Errorf("pipe %q: worker %d is nil", name, i)
		}
		if err := g.AddEdge(prev, w); err != nil {
			return nil, fmt.Errorf("pipe %q: %w", name, err)
		}
		prev = w
	}
	if err := g.AddEdge(prev, graph.End); err != nil {
		return nil, fmt.Errorf("pipe %q: %w", name, err)
	}

	return &Pipe{name: name, graph: g}, nil
}

// Name returns the pipe name.
func (p *Pipe) Name() string { return p.name }

// Graph exposes the underlying graph, e.g. for visualization.
func (p *Pipe) Graph() *graph.Graph { return p.graph }

// Invoke delegates to the underlying graph.
func (p *Pipe) Invoke(ctx context.Context, s graph.State, task string) (*graph.Result, error) {
	resp, err := p.graph.Invoke(ctx, graph.Request{State: s, Task: task})
	if err != nil {
		return nil, err
	}
	return &graph.Result{State: resp.State, History: resp.History}, nil
}
