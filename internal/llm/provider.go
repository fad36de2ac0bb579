// Package llm provides a provider-agnostic client for chat-completion
// APIs over plain HTTP. The pipeline consumes whole completions; there is
// no streaming surface.
package llm

import (
	"context"
)

// Provider is the interface all LLM providers implement.
// Implementations hold no per-request state and are safe for concurrent
// use.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Complete sends a completion request and returns the full response.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Ping checks if the provider is reachable with the configured
	// credentials.
	Ping(ctx context.Context) error
}

// CompletionRequest represents a request to the LLM.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64

	// JSONMode asks the provider to constrain output to valid JSON,
	// where supported. Providers without the capability ignore it; the
	// caller still cleans fenced output.
	JSONMode bool
}

// Message represents a chat message.
type Message struct {
	Role    string
	Content string
}

// CompletionResponse represents the full response.
type CompletionResponse struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
}

// Usage tracks token usage.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// NewRequest creates a completion request with a system and user message.
func NewRequest(model, systemPrompt, userPrompt string) *CompletionRequest {
	return &CompletionRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}
