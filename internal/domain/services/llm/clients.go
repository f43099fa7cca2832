package llm

import (
	"context"

	"planforge/internal/domain/models/planning"
)

// GenerationClient produces document text from a prompt.
type GenerationClient interface {
	// Generate returns the text produced for prompt by model.
	// Fails with a *domain.GenerationError when the call fails or yields no text.
	Generate(ctx context.Context, prompt, model string, opts ...GenerateOption) (string, error)
}

// EvaluationClient judges content against a rubric.
type EvaluationClient interface {
	// Evaluate scores content against criteria. Unparseable replies degrade to a
	// neutral failing evaluation; only transport failures return *domain.EvaluationError.
	Evaluate(ctx context.Context, content, criteria string) (*planning.Evaluation, error)
}

// GenerateOptions holds optional generation settings.
type GenerateOptions struct {
	// DocumentType requests structured output using the type's schema
	DocumentType planning.DocumentType
	System       string
	MaxTokens    int
}

// GenerateOption configures a Generate call.
type GenerateOption func(*GenerateOptions)

// WithDocumentType requests schema-guided extraction for docType.
func WithDocumentType(docType planning.DocumentType) GenerateOption {
	return func(o *GenerateOptions) {
		o.DocumentType = docType
	}
}

// WithSystem sets the system prompt.
func WithSystem(system string) GenerateOption {
	return func(o *GenerateOptions) {
		o.System = system
	}
}

// WithMaxTokens caps the reply length.
func WithMaxTokens(n int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxTokens = n
	}
}

// ApplyGenerateOptions folds opts into a GenerateOptions value.
func ApplyGenerateOptions(opts ...GenerateOption) GenerateOptions {
	var o GenerateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
