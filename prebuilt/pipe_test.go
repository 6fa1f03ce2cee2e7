package prebuilt_test

import (
	"context"
	"sync"
	"testing"

	"github.com/smallnest/agentgraph/graph"
	"github.com/smallnest/agentgraph/prebuilt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tracker records worker visitation order.
type tracker struct {
	mu    sync.Mutex
	order []string
}

func (tr *tracker) visit(name string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.order = append(tr.order, name)
}

func (tr *tracker) visited() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]string(nil), tr.order...)
}

// step returns a worker that records its visit, emits one message and
// leaves state unchanged.
func step(name string, tr *tracker) *graph.FuncWorker {
	return graph.WorkerFunc(name, func(ctx context.Context, s graph.State, task string) (*graph.Result, error) {
		tr.visit(name)
		return &graph.Result{
			History: []graph.Message{{Name: name, Role: "assistant", Content: "ok"}},
		}, nil
	})
}

func TestNewPipe_Validation(t *testing.T) {
	t.Parallel()

	tr := &tracker{}

	_, err := prebuilt.NewPipe("", []graph.Worker{step("a", tr)})
	assert.Error(t, err)

	_, err = prebuilt.NewPipe("p", nil)
	assert.Error(t, err)

	_, err = prebuilt.NewPipe("p", []graph.Worker{step("a", tr), nil})
	assert.Error(t, err)
}

func TestPipe_VisitsInOrder(t *testing.T) {
	t.Parallel()

	tr := &tracker{}
	p, err := prebuilt.NewPipe("p", []graph.Worker{step("a", tr), step("b", tr), step("c", tr)})
	require.NoError(t, err)
	assert.Equal(t, "p", p.Name())

	res, err := p.Invoke(context.Background(), graph.State{}, "t")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, tr.visited())
	require.Len(t, res.History, 3)
	assert.Equal(t, "a", res.History[0].Name)
	assert.Equal(t, "c", res.History[2].Name)
}

func TestPipe_Nests(t *testing.T) {
	t.Parallel()

	tr := &tracker{}
	inner, err := prebuilt.NewPipe("inner", []graph.Worker{step("i1", tr), step("i2", tr)})
	require.NoError(t, err)

	outer, err := prebuilt.NewPipe("outer", []graph.Worker{step("pre", tr), inner, step("post", tr)})
	require.NoError(t, err)

	res, err := outer.Invoke(context.Background(), graph.State{}, "t")
	require.NoError(t, err)

	assert.Equal(t, []string{"pre", "i1", "i2", "post"}, tr.visited())
	assert.Len(t, res.History, 4)
}

func TestPipe_Reinvokable(t *testing.T) {
	t.Parallel()

	tr := &tracker{}
	p, err := prebuilt.NewPipe("p", []graph.Worker{step("a", tr)})
	require.NoError(t, err)

	_, err = p.Invoke(context.Background(), graph.State{}, "t")
	require.NoError(t, err)
	_, err = p.Invoke(context.Background(), graph.State{}, "t")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "a"}, tr.visited())
}
