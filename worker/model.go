package worker

import (
	"context"

	"github.com/smallnest/agentgraph/graph"
)

// Model is the narrow provider contract an Agent needs: one chat
// completion over a system prompt and a message transcript.
type Model interface {
	Chat(ctx context.Context, system string, messages []graph.Message) (string, error)
}

// ModelFunc adapts a function to the Model interface.
type ModelFunc func(ctx context.Context, system string, messages []graph.Message) (string, error)

// Chat calls the wrapped function.
func (f ModelFunc) Chat(ctx context.Context, system string, messages []graph.Message) (string, error) {
	return f(ctx, system, messages)
}
