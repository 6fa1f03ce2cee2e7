package prebuilt

import (
	"context"
	"fmt"

	"github.com/smallnest/agentgraph/graph"
)

// Vote is the fan-out/fan-in ensemble: every voter runs concurrently on
// the same state and task, then the synthesizer runs once all have
// settled:
// START -> {v1..vn} -> synthesizer -> END.
//
// With the default merge strategy the synthesizer sees only the
// last-resolved voter's state; pass graph.WithReducer to combine all
// voter states instead. Every voter's messages are always present in the
// history.
type Vote struct {
	name  string
	graph *graph.Graph
}

var _ graph.Worker = (*Vote)(nil)

// NewVote builds the ensemble graph once.
func NewVote(name string, synthesizer graph.Worker, voters []graph.Worker, opts ...graph.Option) (*Vote, error) {
	if name == "" {
		return nil, fmt.Errorf("vote name must not be empty")
	}
	if synthesizer == nil {
		return nil, fmt.Errorf("vote %q: synthesizer must not be nil", name)
	}
	if len(voters) == 0 {
		return nil, fmt.Errorf("vote %q: at least one voter is required", name)
	}

	targets := make([]graph.Node, 0, len(voters))
	for i, v := range voters {
		if v == nil {
			return nil, fmt.Errorf("vote %q: voter %d is nil", name, i)
		}
		targets = append(targets, v)
	}

	g := graph.New(opts...)
	if err := g.AddParallelEdges(graph.Start, targets, synthesizer); err != nil {
		return nil, fmt.Errorf("vote %q: %w", name, err)
	}
	if err := g.AddEdge(synthesizer, graph.End); err != nil {
		return nil, fmt.Errorf("vote %q: %w", name, err)
	}

	return &Vote{name: name, graph: g}, nil
}

// Name returns the ensemble name.
func (v *Vote) Name() string { return v.name }

// Graph exposes the underlying graph, e.g. for visualization.
func (v *Vote) Graph() *graph.Graph { return v.graph }

// Invoke delegates to the underlying graph.
func (v *Vote) Invoke(ctx context.Context, s graph.State, task string) (*graph.Result, error) {
	resp, err := v.graph.Invoke(ctx, graph.Request{State: s, Task: task})
	if err != nil {
		return nil, err
	}
	return &graph.Result{State: resp.State, History: resp.History}, nil
}
