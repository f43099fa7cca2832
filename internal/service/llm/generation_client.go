package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"planforge/internal/config"
	"planforge/internal/domain"
	domainllm "planforge/internal/domain/services/llm"
	"planforge/internal/metrics"
)

// ClientConfig holds settings shared by the generation and evaluation clients
type ClientConfig struct {
	// System is the default system prompt
	System string

	// Timeout bounds each provider call; zero means no timeout
	Timeout time.Duration

	// MaxTokens caps each reply; zero uses the package default
	MaxTokens int
}

// generationClient implements the GenerationClient interface
type generationClient struct {
	registry *ProviderRegistry
	cfg      ClientConfig
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewGenerationClient creates a generation client. m may be nil.
func NewGenerationClient(registry *ProviderRegistry, cfg ClientConfig, m *metrics.Metrics, logger *slog.Logger) domainllm.GenerationClient {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = config.DefaultMaxOutputTokens
	}
	return &generationClient{
		registry: registry,
		cfg:      cfg,
		metrics:  m,
		logger:   logger,
	}
}

// Generate runs prompt on model. With a document type the reply is requested
// as structured JSON and the document text is extracted from it.
func (c *generationClient) Generate(ctx context.Context, prompt, model string, opts ...domainllm.GenerateOption) (string, error) {
	o := domainllm.ApplyGenerateOptions(opts...)

	provider, providerModel, err := c.registry.ResolveModel(model)
	if err != nil {
		return "", &domain.GenerationError{
			Model:        model,
			DocumentType: string(o.DocumentType),
			Message:      "model unavailable",
			Err:          err,
		}
	}

	req := &domainllm.CompletionRequest{
		Model:     providerModel,
		System:    c.cfg.System,
		Prompt:    prompt,
		MaxTokens: c.cfg.MaxTokens,
	}
	if o.System != "" {
		req.System = o.System
	}
	if o.MaxTokens > 0 {
		req.MaxTokens = o.MaxTokens
	}
	if o.DocumentType != "" {
		req.Schema = SchemaFor(o.DocumentType)
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := provider.Complete(ctx, req)
	c.metrics.ObserveLLMRequest(provider.Name(), "generate", time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordLLMError("generate")
		return "", &domain.GenerationError{
			Model:        model,
			DocumentType: string(o.DocumentType),
			Message:      "provider call failed",
			Err:          err,
		}
	}

	text := strings.TrimSpace(resp.Text)
	if req.Schema != nil {
		text = ExtractContent(resp.Text, req.Schema.Field)
	}
	if text == "" {
		c.metrics.RecordLLMError("generate")
		return "", &domain.GenerationError{
			Model:        model,
			DocumentType: string(o.DocumentType),
			Message:      "response contained no text",
		}
	}

	c.logger.Debug("generation complete",
		"provider", provider.Name(),
		"model", providerModel,
		"document_type", o.DocumentType,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
		"duration", time.Since(start),
	)

	return text, nil
}
