package worker

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallnest/agentgraph/graph"
	"github.com/smallnest/agentgraph/state"
)

// Agent is the single model-call worker: it shapes a prompt from its
// instructions, the task and an optional state snapshot, makes one call
// to its Model, stores the reply back into state and emits it as a
// history message.
type Agent struct {
	name         string
	role         string
	instructions string
	model        Model
	stateKey     string
	injectPaths  []string
	inject       bool
	when         state.Predicate
}

var _ graph.Worker = (*Agent)(nil)

// AgentOption configures an Agent.
type AgentOption func(*Agent)

// WithRole sets a short persona line prepended to the system prompt.
func WithRole(role string) AgentOption {
	return func(a *Agent) { a.role = role }
}

// WithInstructions sets the agent's system instructions.
func WithInstructions(instructions string) AgentOption {
	return func(a *Agent) { a.instructions = instructions }
}

// WithStateKey sets the dot path where the reply is written. The default
// is "replies.<name>".
func WithStateKey(path string) AgentOption {
	return func(a *Agent) {
		if path != "" {
			a.stateKey = path
		}
	}
}

// WithStateInjection appends a JSON snapshot of the named state paths to
// the prompt. With no paths, the whole state is injected.
func WithStateInjection(paths ...string) AgentOption {
	return func(a *Agent) {
		a.inject = true
		a.injectPaths = paths
	}
}

// WithWhen gates the agent on a predicate: when it does not hold for the
// current state, the agent skips the model call and returns state
// unchanged with no messages.
func WithWhen(pred state.Predicate) AgentOption {
	return func(a *Agent) { a.when = pred }
}

// NewAgent creates a model-call agent.
func NewAgent(name string, model Model, opts ...AgentOption) (*Agent, error) {
	if name == "" {
		return nil, fmt.Errorf("agent name must not be empty")
	}
	if model == nil {
		return nil, fmt.Errorf("agent %q: model must not be nil", name)
	}
	a := &Agent{
		name:     name,
		model:    model,
		stateKey: "replies." + name,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Name returns the agent name.
func (a *Agent) Name() string { return a.name }

// Invoke makes one model call and folds the reply into state and history.
func (a *Agent) Invoke(ctx context.Context, s graph.State, task string) (*graph.Result, error) {
	if a.when != nil && !a.when(s) {
		return &graph.Result{}, nil
	}

	prompt := task
	if a.inject {
		prompt = task + "\n\nCurrent state:\n" + state.InjectJSON(s, a.injectPaths...)
	}

	reply, err := a.model.Chat(ctx, a.systemPrompt(), []graph.Message{
		{Name: "user", Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("model call: %w", err)
	}

	return &graph.Result{
		State: state.Set(s, a.stateKey, reply),
		History: []graph.Message{
			{Name: a.name, Role: "assistant", Content: reply},
		},
	}, nil
}

func (a *Agent) systemPrompt() string {
	var parts []string
	if a.role != "" {
		parts = append(parts, "You are "+a.role+".")
	}
	if a.instructions != "" {
		parts = append(parts, a.instructions)
	}
	return strings.Join(parts, "\n\n")
}
