package llm

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/qaflow/orchestrator/internal/qaerrors"
)

const anthropicDefaultMaxTokens = 4096

// AnthropicInvoker drives Anthropic's Messages API with a single
// synchronous call — the Invoker contract returns one string, so New is
// used in place of the streaming call a chat UI needs.
type AnthropicInvoker struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicInvoker constructs an invoker for the given model using
// apiKey.
func NewAnthropicInvoker(apiKey, model string) *AnthropicInvoker {
	return &AnthropicInvoker{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: anthropicDefaultMaxTokens,
	}
}

func (a *AnthropicInvoker) Provider() string { return "anthropic" }
func (a *AnthropicInvoker) Model() string    { return a.model }

func (a *AnthropicInvoker) Invoke(ctx context.Context, messages []Message) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
	}

	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		case RoleUser:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", &qaerrors.LLMError{Provider: a.Provider(), Model: a.model, Err: err}
	}

	var text string
	for _, block := range resp.Content {
		if tb := block.AsAny(); tb != nil {
			if textBlock, ok := tb.(anthropic.TextBlock); ok {
				text += textBlock.Text
			}
		}
	}

	return text, nil
}
