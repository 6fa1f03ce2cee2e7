package prebuilt

import (
	"context"
	"fmt"

	"github.com/smallnest/agentgraph/graph"
	"github.com/smallnest/agentgraph/state"
)

// Team is the supervisor architecture: a star topology with a decision
// hub. The supervisor runs first and after every member; it records its
// decision in the state router field (see state.SetRoute), which a
// conditional edge resolves against a registry of member names. Members
// always hand control back to the supervisor.
//
// Routing goes through the statically built name registry only; there is
// no dynamic lookup beyond it, and an unknown or empty name ends the
// traversal.
type Team struct {
	name  string
	graph *graph.Graph
}

var _ graph.Worker = (*Team)(nil)

// NewTeam builds the star graph once. Member names must be unique, since
// the supervisor routes by name.
func NewTeam(name string, supervisor graph.Worker, members []graph.Worker, opts ...graph.Option) (*Team, error) {
	if name == "" {
		return nil, fmt.Errorf("team name must not be empty")
	}
	if supervisor == nil {
		return nil, fmt.Errorf("team %q: supervisor must not be nil", name)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("team %q: at least one member is required", name)
	}

	registry := make(map[string]graph.Worker, len(members))
	for i, m := range members {
		if m == nil {
			return nil, fmt.Errorf("team %q: member %d is nil", name, i)
		}
		if _, dup := registry[m.Name()]; dup {
			return nil, fmt.Errorf("team %q: duplicate member name %q", name, m.Name())
		}
		registry[m.Name()] = m
	}

	g := graph.New(opts...)
	if err := g.AddEdge(graph.Start, supervisor); err != nil {
		return nil, fmt.Errorf("team %q: %w", name, err)
	}
	if err := g.AddConditionalEdge(supervisor, func(s graph.State) graph.Node {
		route := state.Router(s)
		if route.Done {
			return graph.End
		}
		if member, ok := registry[route.Next]; ok {
			return member
		}
		return graph.End
	}); err != nil {
		return nil, fmt.Errorf("team %q: %w", name, err)
	}
	for _, m := range members {
		if err := g.AddEdge(m, supervisor); err != nil {
			return nil, fmt.Errorf("team %q: %w", name, err)
		}
	}

	return &Team{name: name, graph: g}, nil
}

// Name returns the team name.
func (t *Team) Name() string { return t.name }

// Graph exposes the underlying graph, e.g. for visualization.
func (t *Team) Graph() *graph.Graph { return t.graph }

// Invoke delegates to the underlying graph.
func (t *Team) Invoke(ctx context.Context, s graph.State, task string) (*graph.Result, error) {
	resp, err := t.graph.Invoke(ctx, graph.Request{State: s, Task: task})
	if err != nil {
		return nil, err
	}
	return &graph.Result{State: resp.State, History: resp.History}, nil
}
