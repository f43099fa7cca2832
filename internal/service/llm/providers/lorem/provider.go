package lorem

import (
	"context"
	"fmt"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"
	"github.com/tidwall/sjson"

	domainllm "planforge/internal/domain/services/llm"
)

// Provider is a mock LLM provider that generates lorem ipsum text.
// Used for testing and development without requiring real API keys.
type Provider struct {
	generator *loremgen.Lorem
}

// NewProvider creates a new lorem ipsum provider.
func NewProvider() *Provider {
	return &Provider{
		generator: loremgen.New(),
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "lorem"
}

// SupportsModel returns true if the model name starts with "lorem-".
// Example models: "lorem-fast", "lorem-slow"
func (p *Provider) SupportsModel(model string) bool {
	return strings.HasPrefix(model, "lorem-")
}

// Complete returns lorem ipsum markdown, or a JSON object filled with
// lorem ipsum when a schema is requested.
func (p *Provider) Complete(ctx context.Context, req *domainllm.CompletionRequest) (*domainllm.CompletionResponse, error) {
	if !p.SupportsModel(req.Model) {
		return nil, fmt.Errorf("model '%s' is not supported by lorem provider", req.Model)
	}

	select {
	case <-time.After(responseDelay(req.Model)):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var text string
	if req.Schema != nil {
		var err error
		text, err = p.generateObject(req.Schema.Schema)
		if err != nil {
			return nil, err
		}
	} else {
		text = p.generateMarkdown()
	}

	return &domainllm.CompletionResponse{
		Text:         text,
		Model:        req.Model,
		InputTokens:  len(strings.Fields(req.System + " " + req.Prompt)),
		OutputTokens: len(strings.Fields(text)), // word count as proxy
		StopReason:   "end_turn",
	}, nil
}

// responseDelay simulates provider latency.
// - lorem-slow: 2 seconds
// - default: none
func responseDelay(model string) time.Duration {
	if strings.Contains(model, "slow") {
		return 2 * time.Second
	}
	return 0
}

func (p *Provider) generateMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# " + strings.TrimSuffix(p.generator.Sentence(2, 5), ".") + "\n\n")
	for i := 0; i < 3; i++ {
		sb.WriteString(p.generator.Paragraph(3, 5))
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}

// generateObject fills every declared property of an object schema.
func (p *Provider) generateObject(schema map[string]interface{}) (string, error) {
	doc := "{}"
	props, _ := schema["properties"].(map[string]interface{})
	for name, raw := range props {
		prop, _ := raw.(map[string]interface{})
		var value interface{}
		switch prop["type"] {
		case "integer", "number":
			value = 7
		case "boolean":
			value = true
		case "array":
			value = []string{p.generator.Sentence(5, 12)}
		default:
			value = p.generateMarkdown()
		}

		var err error
		doc, err = sjson.Set(doc, name, value)
		if err != nil {
			return "", fmt.Errorf("build lorem object: %w", err)
		}
	}
	return doc, nil
}
