package providers

import "context"

// Message is the provider-agnostic prompt message representation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateOptions tunes a single completion call.
type GenerateOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// LLMProvider is the completion collaborator the orchestrator depends on.
// Implementations must honor ctx cancellation and return plain text.
type LLMProvider interface {
	Generate(ctx context.Context, messages []Message, opts GenerateOptions) (string, error)
}
