package worker

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/smallnest/agentgraph/graph"
)

// OpenAIModel adapts the sashabaranov/go-openai chat-completions client
// to the Model interface. It also works against OpenAI-compatible
// endpoints via NewOpenAIModelWithClient.
type OpenAIModel struct {
	client *openai.Client
	model  string
}

var _ Model = (*OpenAIModel)(nil)

// NewOpenAIModel creates an adapter using the given API key. An empty
// model defaults to gpt-4o-mini.
func NewOpenAIModel(apiKey, model string) *OpenAIModel {
	return NewOpenAIModelWithClient(openai.NewClient(apiKey), model)
}

// NewOpenAIModelWithClient creates an adapter around an existing client,
// which allows custom base URLs and test doubles.
func NewOpenAIModelWithClient(client *openai.Client, model string) *OpenAIModel {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIModel{client: client, model: model}
}

// Chat performs one chat completion.
func (m *OpenAIModel) Chat(ctx context.Context, system string, messages []graph.Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    m.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)+1),
	}
	if system != "" {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, msg := range messages {
		role := openai.ChatMessageRoleUser
		if msg.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
