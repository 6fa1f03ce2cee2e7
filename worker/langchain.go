package worker

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/smallnest/agentgraph/graph"
)

// LangchainModel adapts a tmc/langchaingo llms.Model to the Model
// interface, so any provider langchaingo supports can back an Agent.
type LangchainModel struct {
	model llms.Model
	opts  []llms.CallOption
}

var _ Model = (*LangchainModel)(nil)

// NewLangchainModel wraps a langchaingo model. Call options (temperature,
// max tokens, ...) are applied to every completion.
func NewLangchainModel(model llms.Model, opts ...llms.CallOption) *LangchainModel {
	return &LangchainModel{model: model, opts: opts}
}

// Chat performs one content generation.
func (m *LangchainModel) Chat(ctx context.Context, system string, messages []graph.Message) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages)+1)
	if system != "" {
		content = append(content, llms.TextParts(schema.ChatMessageTypeSystem, system))
	}
	for _, msg := range messages {
		role := schema.ChatMessageTypeHuman
		if msg.Role == "assistant" {
			role = schema.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, msg.Content))
	}

	resp, err := m.model.GenerateContent(ctx, content, m.opts...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Content, nil
}
