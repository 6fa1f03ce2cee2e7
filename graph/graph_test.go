package graph_test

import (
	"context"
	"testing"

	"github.com/smallnest/agentgraph/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthrough returns a worker that emits one message and leaves state
// unchanged.
func passthrough(name string) *graph.FuncWorker {
	return graph.WorkerFunc(name, func(ctx context.Context, state graph.State, task string) (*graph.Result, error) {
		return &graph.Result{
			History: []graph.Message{{Name: name, Role: "assistant", Content: "ok"}},
		}, nil
	})
}

func TestAddEdge_Validation(t *testing.T) {
	t.Parallel()

	g := graph.New()
	a := passthrough("a")

	err := g.AddEdge(nil, a)
	assert.ErrorIs(t, err, graph.ErrInvalidNode)

	err = g.AddEdge(a, nil)
	assert.ErrorIs(t, err, graph.ErrInvalidNode)

	err = g.AddEdge(graph.Start, 42)
	assert.ErrorIs(t, err, graph.ErrInvalidNode)

	err = g.AddEdge(graph.Start, a)
	assert.NoError(t, err)
}

func TestAddEdge_DuplicateRejection(t *testing.T) {
	t.Parallel()

	g := graph.New()
	a := passthrough("a")
	b := passthrough("b")

	require.NoError(t, g.AddEdge(a, b))

	err := g.AddEdge(a, b)
	assert.ErrorIs(t, err, graph.ErrDuplicateEdge)

	// A different target from the same source is fine.
	assert.NoError(t, g.AddEdge(a, graph.End))
}

func TestAddConditionalEdge_DuplicateByFunctionIdentity(t *testing.T) {
	t.Parallel()

	g := graph.New()
	a := passthrough("a")

	route := func(state graph.State) graph.Node { return graph.End }

	require.NoError(t, g.AddConditionalEdge(a, route))

	err := g.AddConditionalEdge(a, route)
	assert.ErrorIs(t, err, graph.ErrDuplicateEdge)

	// A distinct function value is a distinct edge even if it behaves
	// the same.
	other := func(state graph.State) graph.Node { return graph.End }
	assert.NoError(t, g.AddConditionalEdge(a, other))

	err = g.AddConditionalEdge(a, nil)
	assert.ErrorIs(t, err, graph.ErrInvalidNode)
}

func TestAddParallelEdges_DuplicateRejection(t *testing.T) {
	t.Parallel()

	g := graph.New()
	a := passthrough("a")
	b := passthrough("b")
	c := passthrough("c")
	synth := passthrough("synth")

	require.NoError(t, g.AddParallelEdges(a, []graph.Node{b, c}, synth))

	// Same targets in the same order with the same next: duplicate.
	err := g.AddParallelEdges(a, []graph.Node{b, c}, synth)
	assert.ErrorIs(t, err, graph.ErrDuplicateEdge)

	// Different target order is structurally different.
	assert.NoError(t, g.AddParallelEdges(a, []graph.Node{c, b}, synth))

	// Different next is structurally different.
	assert.NoError(t, g.AddParallelEdges(a, []graph.Node{b, c}, graph.End))
}

func TestAddParallelEdges_Validation(t *testing.T) {
	t.Parallel()

	g := graph.New()
	a := passthrough("a")

	err := g.AddParallelEdges(a, nil, nil)
	assert.ErrorIs(t, err, graph.ErrInvalidNode)

	err = g.AddParallelEdges(a, []graph.Node{}, nil)
	assert.ErrorIs(t, err, graph.ErrInvalidNode)

	err = g.AddParallelEdges(a, []graph.Node{nil}, nil)
	assert.ErrorIs(t, err, graph.ErrInvalidNode)
}

func TestCaps(t *testing.T) {
	t.Parallel()

	t.Run("node limit", func(t *testing.T) {
		t.Parallel()

		g := graph.New(graph.WithMaxNodes(2))
		require.NoError(t, g.AddEdge("a", graph.End))
		require.NoError(t, g.AddEdge("b", graph.End))

		err := g.AddEdge("c", graph.End)
		assert.ErrorIs(t, err, graph.ErrNodeLimit)

		// Adding another edge to an existing source is still allowed.
		assert.NoError(t, g.AddConditionalEdge("a", func(state graph.State) graph.Node { return nil }))
	})

	t.Run("edge limit", func(t *testing.T) {
		t.Parallel()

		g := graph.New(graph.WithMaxEdgesPerNode(1))
		require.NoError(t, g.AddEdge("a", graph.End))

		err := g.AddEdge("a", "b")
		assert.ErrorIs(t, err, graph.ErrEdgeLimit)
	})
}
