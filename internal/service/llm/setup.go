package llm

import (
	"fmt"
	"log/slog"

	"planforge/internal/catalog"
	"planforge/internal/config"
	domainllm "planforge/internal/domain/services/llm"
	"planforge/internal/metrics"
)

// Clients holds the generation and evaluation clients and the registry behind them
type Clients struct {
	Registry   *ProviderRegistry
	Generation domainllm.GenerationClient
	Evaluation domainllm.EvaluationClient
}

// SetupProviders initializes the provider factory and registry for routing
func SetupProviders(cfg *config.Config, logger *slog.Logger) (*ProviderRegistry, *ProviderFactory) {
	factory := NewProviderFactory(cfg)
	registry := NewProviderRegistry(factory)

	for _, name := range []string{"anthropic", "openai", "lorem"} {
		if factory.Configured(name) {
			logger.Info("provider available", "name", name)
		} else {
			logger.Warn("provider not configured", "name", name)
		}
	}

	return registry, factory
}

// SetupClients builds the generation and evaluation clients for the
// configured primary and evaluation models
func SetupClients(cfg *config.Config, cat *catalog.Registry, registry *ProviderRegistry, m *metrics.Metrics, logger *slog.Logger) (*Clients, error) {
	for _, model := range []string{cfg.PrimaryModel, cfg.EvaluationModel} {
		if _, _, err := registry.ResolveModel(model); err != nil {
			return nil, fmt.Errorf("model %s unavailable: %w", model, err)
		}
	}

	prompts := cat.Prompts()
	clientCfg := ClientConfig{
		System:  prompts.System,
		Timeout: cfg.GenerationTimeout,
	}

	logger.Info("llm clients initialized",
		"primary_model", cfg.PrimaryModel,
		"evaluation_model", cfg.EvaluationModel,
		"timeout", cfg.GenerationTimeout,
	)

	return &Clients{
		Registry:   registry,
		Generation: NewGenerationClient(registry, clientCfg, m, logger),
		Evaluation: NewEvaluationClient(registry, cfg.EvaluationModel, prompts.Evaluation, clientCfg, m, logger),
	}, nil
}
