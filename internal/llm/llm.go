// Package llm abstracts over the LLM providers an Agent Loop drives: a
// stateless Invoker that takes an ordered message list and returns one
// assistant string. Conversation continuity lives in the Agent Loop, not
// here.
package llm

import "context"

// Role is a message's position in the conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn in the conversation passed to Invoke.
type Message struct {
	Role    Role
	Content string
}

// Invoker abstracts over the chosen model provider. It is selected once
// at construction — never switched at runtime — and never retries a
// failed call; the caller treats a transport failure as fatal.
type Invoker interface {
	// Invoke sends messages to the provider and returns the single
	// assistant reply.
	Invoke(ctx context.Context, messages []Message) (string, error)

	// Provider names the backing service, used in LLMError context.
	Provider() string

	// Model names the specific model in use, used in LLMError context.
	Model() string
}
