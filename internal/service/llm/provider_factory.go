package llm

import (
	"fmt"

	"planforge/internal/config"
	domainllm "planforge/internal/domain/services/llm"
	"planforge/internal/service/llm/providers/anthropic"
	"planforge/internal/service/llm/providers/lorem"
	"planforge/internal/service/llm/providers/openai"
)

// ProviderFactory creates provider instances from configuration
type ProviderFactory struct {
	config *config.Config
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(cfg *config.Config) *ProviderFactory {
	return &ProviderFactory{
		config: cfg,
	}
}

// GetProvider returns a provider instance for the given provider name
//
// Supported providers:
//   - "anthropic" - Claude models via Anthropic API
//   - "openai" - GPT and o-series models via OpenAI API
//   - "lorem" - Mock provider for testing (no API key required)
func (f *ProviderFactory) GetProvider(providerName string) (domainllm.Provider, error) {
	switch providerName {
	case "anthropic":
		if f.config.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		return anthropic.NewProvider(f.config.AnthropicAPIKey)

	case "openai":
		if f.config.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
		return openai.NewProvider(f.config.OpenAIAPIKey, f.config.OpenAIBaseURL)

	case "lorem":
		return lorem.NewProvider(), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}
}

// Configured reports whether the provider can be created with the current configuration
func (f *ProviderFactory) Configured(providerName string) bool {
	switch providerName {
	case "anthropic":
		return f.config.AnthropicAPIKey != ""
	case "openai":
		return f.config.OpenAIAPIKey != ""
	case "lorem":
		return true
	}
	return false
}
