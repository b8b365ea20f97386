package llm

import "context"

// Provider is the interface to the remote answering service
type Provider interface {
	// Ask submits one message with a system prompt and returns the reply.
	// Implementations make a single attempt; retry policy belongs to the
	// caller (the conversation engine makes none).
	Ask(ctx context.Context, message, systemPrompt string) (string, error)

	// Name returns the provider name (e.g. "http", "script")
	Name() string
}
