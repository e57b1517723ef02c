package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/qaflow/orchestrator/internal/qaerrors"
)

// OpenAIInvoker drives the Chat Completions API. A non-empty baseURL
// lets it serve any OpenAI-compatible gateway, matching the spec's
// "third-party chat service" provider.
type OpenAIInvoker struct {
	client openai.Client
	model  string
}

// NewOpenAIInvoker constructs an invoker for model. baseURL is optional;
// empty uses the default OpenAI endpoint.
func NewOpenAIInvoker(apiKey, model, baseURL string) *OpenAIInvoker {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIInvoker{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (o *OpenAIInvoker) Provider() string { return "openai" }
func (o *OpenAIInvoker) Model() string    { return o.model }

func (o *OpenAIInvoker) Invoke(ctx context.Context, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
	}

	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case RoleUser:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		case RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		}
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", &qaerrors.LLMError{Provider: o.Provider(), Model: o.model, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}
