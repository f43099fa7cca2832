// Package app wires storage, LLM clients and services into one object
// shared by the server and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"planforge/internal/catalog"
	"planforge/internal/config"
	domainllm "planforge/internal/domain/services/llm"
	planningSvc "planforge/internal/domain/services/planning"
	"planforge/internal/events"
	"planforge/internal/metrics"
	"planforge/internal/service/generation"
	"planforge/internal/service/llm"
	"planforge/internal/service/planning"
	"planforge/internal/service/planning/converter"
)

// App holds the wired services
type App struct {
	Config    *config.Config
	Catalog   *catalog.Registry
	Metrics   *metrics.Metrics
	Bus       *events.Bus
	Storage   *Storage
	Providers *llm.ProviderFactory

	Projects     planningSvc.ProjectService
	Documents    planningSvc.DocumentService
	Templates    planningSvc.TemplateService
	Generation   planningSvc.GenerationService
	Export       planningSvc.ExportService
	Summary      planningSvc.SummaryService
	DocStore     planningSvc.DocumentStore
	Orchestrator *generation.Orchestrator

	logger *slog.Logger
}

// Options overrides parts of the default wiring
type Options struct {
	// Generation and Evaluation replace the provider-backed clients when set
	Generation domainllm.GenerationClient
	Evaluation domainllm.EvaluationClient
}

// New wires every service over storage
func New(cfg *config.Config, storage *Storage, opts Options, logger *slog.Logger) (*App, error) {
	cat, err := catalog.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded", "models", len(cat.Models()))

	m := metrics.New()
	bus := events.NewBus(logger)

	registry, factory := llm.SetupProviders(cfg, logger)

	generator, evaluator := opts.Generation, opts.Evaluation
	if generator == nil || evaluator == nil {
		clients, err := llm.SetupClients(cfg, cat, registry, m, logger)
		if err != nil {
			return nil, err
		}
		if generator == nil {
			generator = clients.Generation
		}
		if evaluator == nil {
			evaluator = clients.Evaluation
		}
	}

	docStore := planning.NewDocumentStore(storage.Documents, storage.Versions, storage.TxManager, bus, logger)
	templates := planning.NewTemplateService(storage.Templates, storage.TxManager, cat, logger)

	orchestrator := generation.NewOrchestrator(
		templates,
		generator,
		evaluator,
		docStore,
		cat,
		generation.Config{
			PrimaryModel:      cfg.PrimaryModel,
			MaxIterations:     cfg.MaxRefineIterations,
			ImprovementPrompt: cat.Prompts().Improvement,
		},
		m,
		logger,
	)

	return &App{
		Config:    cfg,
		Catalog:   cat,
		Metrics:   m,
		Bus:       bus,
		Storage:   storage,
		Providers: factory,

		Projects:     planning.NewProjectService(storage.Projects, logger),
		Documents:    planning.NewDocumentService(docStore, storage.Projects, storage.Documents, storage.Versions, converter.NewConverterRegistry(), bus, logger),
		Templates:    templates,
		Generation:   generation.NewGenerationService(orchestrator, storage.Projects, docStore, logger),
		Export:       planning.NewExportService(storage.Projects, storage.Documents, logger),
		Summary:      planning.NewSummaryService(storage.Projects, storage.Documents, logger),
		DocStore:     docStore,
		Orchestrator: orchestrator,

		logger: logger,
	}, nil
}

// Start seeds the default templates and starts the summary refresher
func (a *App) Start(ctx context.Context) error {
	inserted, err := a.Templates.EnsureDefaults(ctx)
	if err != nil {
		return fmt.Errorf("seed default templates: %w", err)
	}
	if inserted > 0 {
		a.logger.Info("default templates seeded", "count", inserted)
	}

	if err := events.NewSummaryRefresher(a.Bus, a.Summary, a.logger).Start(ctx); err != nil {
		return fmt.Errorf("start summary refresher: %w", err)
	}
	return nil
}

// Close stops event delivery and releases storage
func (a *App) Close() {
	if err := a.Bus.Close(); err != nil {
		a.logger.Warn("failed to close event bus", "error", err)
	}
	a.Storage.Close()
}
