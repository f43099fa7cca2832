package llm

import "context"

// Provider defines the interface that all LLM providers must implement.
// Providers are thin: one prompt in, one text reply out.
type Provider interface {
	// Complete sends a single-turn request and returns the raw reply text.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider name (e.g., "anthropic", "openai")
	Name() string

	// SupportsModel returns true if the provider supports the given model.
	SupportsModel(model string) bool
}

// CompletionRequest contains the parameters for one provider call.
type CompletionRequest struct {
	Model     string
	System    string
	Prompt    string
	MaxTokens int

	// Schema requests a JSON object reply. Providers without native
	// structured output append an instruction to the system prompt instead.
	Schema *OutputSchema

	Temperature *float64
}

// CompletionResponse contains the provider's reply.
type CompletionResponse struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
	StopReason   string
}

// OutputSchema describes a structured JSON reply.
type OutputSchema struct {
	// Name identifies the schema to providers that require one
	Name string

	// Field is the property holding the main text content, if any
	Field string

	// Schema is a JSON Schema object
	Schema map[string]interface{}
}
