package tool

import "context"

// Tool is something an agent can call with a text input to produce a
// text output. It matches the shape used by common LLM tool runtimes.
type Tool interface {
	Name() string
	Description() string
	Call(ctx context.Context, input string) (string, error)
}
