package llm

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/qaflow/orchestrator/internal/qaerrors"
)

const ollamaDefaultTimeout = 5 * time.Minute

// OllamaInvoker drives a self-hosted inference service through the
// lightweight Ollama API client, not the full server.
type OllamaInvoker struct {
	client *api.Client
	model  string
}

// NewOllamaInvoker constructs an invoker against baseURL (e.g.
// "http://localhost:11434") for model.
func NewOllamaInvoker(baseURL, model string) *OllamaInvoker {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		parsed, _ = url.Parse("http://localhost:11434")
	}

	httpClient := &http.Client{Timeout: ollamaDefaultTimeout}

	return &OllamaInvoker{
		client: api.NewClient(parsed, httpClient),
		model:  model,
	}
}

func (o *OllamaInvoker) Provider() string { return "ollama" }
func (o *OllamaInvoker) Model() string    { return o.model }

func (o *OllamaInvoker) Invoke(ctx context.Context, messages []Message) (string, error) {
	req := &api.ChatRequest{
		Model:    o.model,
		Messages: toOllamaMessages(messages),
		Stream:   boolPtr(false),
	}

	var reply string
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		reply += resp.Message.Content
		return nil
	})
	if err != nil {
		return "", &qaerrors.LLMError{Provider: o.Provider(), Model: o.model, Err: err}
	}

	return reply, nil
}

func toOllamaMessages(messages []Message) []api.Message {
	out := make([]api.Message, 0, len(messages))
	for _, m := range messages {
		out = append(out, api.Message{Role: string(m.Role), Content: m.Content})
	}
	return out
}

func boolPtr(b bool) *bool {
	return &b
}
