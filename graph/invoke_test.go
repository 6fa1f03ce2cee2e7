package graph_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/smallnest/agentgraph/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder tracks worker visitation order across a traversal.
type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) visit(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, name)
}

func (r *recorder) visited() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// tracked returns a worker that records its visit and emits n messages.
func tracked(name string, rec *recorder, n int) *graph.FuncWorker {
	return graph.WorkerFunc(name, func(ctx context.Context, state graph.State, task string) (*graph.Result, error) {
		rec.visit(name)
		msgs := make([]graph.Message, n)
		for i := range msgs {
			msgs[i] = graph.Message{Name: name, Role: "assistant", Content: "ok"}
		}
		return &graph.Result{History: msgs}, nil
	})
}

func TestInvoke_InputValidation(t *testing.T) {
	t.Parallel()

	g := graph.New()
	require.NoError(t, g.AddEdge(graph.Start, graph.End))

	_, err := g.Invoke(context.Background(), graph.Request{Task: "t"})
	assert.ErrorIs(t, err, graph.ErrInvalidState)

	_, err = g.Invoke(context.Background(), graph.Request{State: graph.State{}})
	assert.ErrorIs(t, err, graph.ErrEmptyTask)

	_, err = g.Invoke(context.Background(), graph.Request{State: graph.State{}, Task: "   "})
	assert.ErrorIs(t, err, graph.ErrEmptyTask)

	_, err = g.Invoke(context.Background(), graph.Request{State: graph.State{}, Task: "t", StartNode: "nowhere"})
	assert.ErrorIs(t, err, graph.ErrUnknownNode)

	_, err = g.Invoke(context.Background(), graph.Request{State: graph.State{}, Task: "t", StartNode: passthrough("loose")})
	assert.ErrorIs(t, err, graph.ErrUnknownNode)
}

func TestInvoke_LinearChain(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	w1 := tracked("w1", rec, 2)
	w2 := tracked("w2", rec, 1)
	w3 := tracked("w3", rec, 3)

	g := graph.New()
	require.NoError(t, g.AddEdge(graph.Start, w1))
	require.NoError(t, g.AddEdge(w1, w2))
	require.NoError(t, g.AddEdge(w2, w3))
	require.NoError(t, g.AddEdge(w3, graph.End))

	resp, err := g.Invoke(context.Background(), graph.Request{State: graph.State{}, Task: "t"})
	require.NoError(t, err)

	assert.Equal(t, []string{"w1", "w2", "w3"}, rec.visited())
	assert.Len(t, resp.History, 6)
	assert.Equal(t, "w1", resp.History[0].Name)
	assert.Equal(t, "w3", resp.History[5].Name)
}

func TestInvoke_EndToEnd(t *testing.T) {
	t.Parallel()

	a := graph.WorkerFunc("A", func(ctx context.Context, state graph.State, task string) (*graph.Result, error) {
		next := graph.State{}
		for k, v := range state {
			next[k] = v
		}
		next["seen"] = true
		return &graph.Result{
			State:   next,
			History: []graph.Message{{Name: "A", Role: "assistant", Content: "ok"}},
		}, nil
	})

	g := graph.New()
	require.NoError(t, g.AddEdge(graph.Start, a))
	require.NoError(t, g.AddEdge(a, graph.End))

	resp, err := g.Invoke(context.Background(), graph.Request{State: graph.State{"seen": false}, Task: "t"})
	require.NoError(t, err)

	assert.Equal(t, graph.State{"seen": true}, resp.State)
	require.Len(t, resp.History, 1)
	assert.Equal(t, graph.Message{Name: "A", Role: "assistant", Content: "ok"}, resp.History[0])
}

func TestInvoke_ConditionalRouting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		route string
		want  string
	}{
		{route: "left", want: "left"},
		{route: "right", want: "right"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.route, func(t *testing.T) {
			t.Parallel()

			rec := &recorder{}
			entry := tracked("entry", rec, 1)
			left := tracked("left", rec, 1)
			right := tracked("right", rec, 1)

			g := graph.New()
			require.NoError(t, g.AddEdge(graph.Start, entry))
			require.NoError(t, g.AddConditionalEdge(entry, func(state graph.State) graph.Node {
				if state["route"] == "left" {
					return left
				}
				return right
			}))
			require.NoError(t, g.AddEdge(left, graph.End))
			require.NoError(t, g.AddEdge(right, graph.End))

			_, err := g.Invoke(context.Background(), graph.Request{
				State: graph.State{"route": tt.route},
				Task:  "t",
			})
			require.NoError(t, err)
			assert.Equal(t, []string{"entry", tt.want}, rec.visited())
		})
	}
}

func TestInvoke_ConditionalFallthrough(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	entry := tracked("entry", rec, 1)
	fallback := tracked("fallback", rec, 1)

	g := graph.New()
	require.NoError(t, g.AddEdge(graph.Start, entry))
	// The conditional never routes; the direct edge added after it must
	// win in insertion order.
	require.NoError(t, g.AddConditionalEdge(entry, func(state graph.State) graph.Node { return nil }))
	require.NoError(t, g.AddEdge(entry, fallback))
	require.NoError(t, g.AddEdge(fallback, graph.End))

	_, err := g.Invoke(context.Background(), graph.Request{State: graph.State{}, Task: "t"})
	require.NoError(t, err)
	assert.Equal(t, []string{"entry", "fallback"}, rec.visited())
}

func TestInvoke_NoEdgeYields_TreatedAsEnd(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	entry := tracked("entry", rec, 1)

	g := graph.New()
	require.NoError(t, g.AddEdge(graph.Start, entry))
	require.NoError(t, g.AddConditionalEdge(entry, func(state graph.State) graph.Node { return nil }))

	resp, err := g.Invoke(context.Background(), graph.Request{State: graph.State{}, Task: "t"})
	require.NoError(t, err)
	assert.Len(t, resp.History, 1)
}

func TestInvoke_DeadEndTerminates(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	entry := tracked("entry", rec, 1)
	sink := tracked("sink", rec, 1)

	g := graph.New()
	require.NoError(t, g.AddEdge(graph.Start, entry))
	require.NoError(t, g.AddEdge(entry, sink))
	// sink has no outgoing edges.

	resp, err := g.Invoke(context.Background(), graph.Request{State: graph.State{}, Task: "t"})
	require.NoError(t, err)
	assert.Equal(t, []string{"entry", "sink"}, rec.visited())
	assert.Len(t, resp.History, 2)
}

func TestInvoke_CycleDetection(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	spin := tracked("spin", rec, 0)

	g := graph.New(graph.WithMaxIterations(10))
	require.NoError(t, g.AddEdge(graph.Start, spin))
	require.NoError(t, g.AddConditionalEdge(spin, func(state graph.State) graph.Node { return spin }))

	_, err := g.Invoke(context.Background(), graph.Request{State: graph.State{}, Task: "t"})
	assert.ErrorIs(t, err, graph.ErrMaxIterations)
}

func TestInvoke_UnknownStringTarget(t *testing.T) {
	t.Parallel()

	a := passthrough("A")

	g := graph.New()
	require.NoError(t, g.AddEdge(graph.Start, a))
	require.NoError(t, g.AddConditionalEdge(a, func(state graph.State) graph.Node { return "B" }))

	_, err := g.Invoke(context.Background(), graph.Request{State: graph.State{}, Task: "t"})
	assert.ErrorIs(t, err, graph.ErrUnknownNode)
}

func TestInvoke_WorkerErrorNamesWorker(t *testing.T) {
	t.Parallel()

	boom := errors.New("provider unavailable")
	bad := graph.WorkerFunc("flaky", func(ctx context.Context, state graph.State, task string) (*graph.Result, error) {
		return nil, boom
	})

	g := graph.New()
	require.NoError(t, g.AddEdge(graph.Start, bad))
	require.NoError(t, g.AddEdge(bad, graph.End))

	_, err := g.Invoke(context.Background(), graph.Request{State: graph.State{}, Task: "t"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `worker "flaky"`)
}

func TestInvoke_MalformedWorkerResult(t *testing.T) {
	t.Parallel()

	bad := graph.WorkerFunc("shapeless", func(ctx context.Context, state graph.State, task string) (*graph.Result, error) {
		return nil, nil
	})

	g := graph.New()
	require.NoError(t, g.AddEdge(graph.Start, bad))
	require.NoError(t, g.AddEdge(bad, graph.End))

	_, err := g.Invoke(context.Background(), graph.Request{State: graph.State{}, Task: "t"})
	assert.ErrorIs(t, err, graph.ErrMalformedResult)
}

func TestInvoke_StartNodeOverride(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	first := tracked("first", rec, 1)
	second := tracked("second", rec, 1)

	g := graph.New()
	require.NoError(t, g.AddEdge(graph.Start, first))
	require.NoError(t, g.AddEdge(first, second))
	require.NoError(t, g.AddEdge(second, graph.End))

	// Starting at second skips first entirely.
	resp, err := g.Invoke(context.Background(), graph.Request{
		State:     graph.State{},
		Task:      "t",
		StartNode: second,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, rec.visited())
	assert.Len(t, resp.History, 1)

	// Starting at End is a no-op traversal.
	resp, err = g.Invoke(context.Background(), graph.Request{
		State:     graph.State{"untouched": true},
		Task:      "t",
		StartNode: graph.End,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.History)
	assert.Equal(t, graph.State{"untouched": true}, resp.State)
}

func TestInvoke_ConcurrentCallsQueue(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	w := tracked("w", rec, 1)

	g := graph.New()
	require.NoError(t, g.AddEdge(graph.Start, w))
	require.NoError(t, g.AddEdge(w, graph.End))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.Invoke(context.Background(), graph.Request{State: graph.State{}, Task: "t"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, rec.visited(), 8)
}
