// Package generation drives document generation for a project: one document
// at a time, the agent-mode refinement loop, and the whole-project sequence.
package generation

import (
	"context"
	"fmt"
	"log/slog"

	"planforge/internal/config"
	"planforge/internal/domain/models/planning"
	domainllm "planforge/internal/domain/services/llm"
	planningSvc "planforge/internal/domain/services/planning"
	"planforge/internal/metrics"
	"planforge/internal/service/prompt"
)

// Rubrics supplies the evaluation criteria for a document type
type Rubrics interface {
	Rubric(docType planning.DocumentType) string
}

// Config holds orchestrator settings
type Config struct {
	// PrimaryModel generates and revises documents
	PrimaryModel string

	// MaxIterations bounds the revisions made by Refine
	MaxIterations int

	// ImprovementPrompt is the revision template (see BuildImprovementPrompt)
	ImprovementPrompt string
}

// Orchestrator generates planning documents in canonical order
type Orchestrator struct {
	templates planningSvc.TemplateSource
	generator domainllm.GenerationClient
	evaluator domainllm.EvaluationClient
	store     planningSvc.DocumentStore
	rubrics   Rubrics
	cfg       Config
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewOrchestrator creates an orchestrator. m may be nil.
func NewOrchestrator(
	templates planningSvc.TemplateSource,
	generator domainllm.GenerationClient,
	evaluator domainllm.EvaluationClient,
	store planningSvc.DocumentStore,
	rubrics Rubrics,
	cfg Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Orchestrator {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = config.DefaultMaxRefineIterations
	}
	return &Orchestrator{
		templates: templates,
		generator: generator,
		evaluator: evaluator,
		store:     store,
		rubrics:   rubrics,
		cfg:       cfg,
		metrics:   m,
		logger:    logger,
	}
}

// GenerateOne generates docType once from its template and persists it.
// Any failure is returned; nothing is written unless generation succeeded.
func (o *Orchestrator) GenerateOne(ctx context.Context, project *planning.Project, docType planning.DocumentType, prior []planning.Document) (*planning.Document, error) {
	tmpl, err := o.templates.ResolveTemplate(ctx, project.TemplateSet, docType)
	if err != nil {
		return nil, fmt.Errorf("resolve template for %s: %w", docType, err)
	}

	text := prompt.Resolve(tmpl.Content, prompt.PlaceholderMap(project.Description, prior))

	content, err := o.generator.Generate(ctx, text, o.cfg.PrimaryModel, domainllm.WithDocumentType(docType))
	if err != nil {
		o.metrics.RecordGeneration(string(docType), string(planning.SourceAIGenerator), "error")
		return nil, err
	}

	doc, err := o.store.UpsertContent(ctx, &planningSvc.UpsertContentRequest{
		ProjectID: project.ID,
		Type:      docType,
		Content:   content,
		Source:    planning.SourceAIGenerator,
	})
	if err != nil {
		o.metrics.RecordGeneration(string(docType), string(planning.SourceAIGenerator), "error")
		return nil, fmt.Errorf("save %s: %w", docType, err)
	}

	o.metrics.RecordGeneration(string(docType), string(planning.SourceAIGenerator), "ok")
	o.logger.Info("document generated",
		"project_id", project.ID,
		"type", docType,
		"template", tmpl.Name,
		"revision", doc.Revision,
		"word_count", doc.WordCount,
	)
	return doc, nil
}

// Refine generates docType, then evaluates and revises it until the evaluation
// passes or MaxIterations revisions have been made. Only the initial
// generation can fail the call: an error inside the loop ends it early and
// the last saved content is kept. The document is always marked completed.
func (o *Orchestrator) Refine(ctx context.Context, project *planning.Project, docType planning.DocumentType, prior []planning.Document) (*planning.Document, error) {
	doc, err := o.GenerateOne(ctx, project, docType, prior)
	if err != nil {
		return nil, err
	}

	criteria := o.rubrics.Rubric(docType)
	revisions := 0

	for i := 0; i < o.cfg.MaxIterations; i++ {
		revised, accepted, err := o.revise(ctx, project, doc, criteria)
		if err != nil {
			o.logger.Warn("refinement stopped early",
				"project_id", project.ID,
				"type", docType,
				"iteration", i+1,
				"error", err,
			)
			break
		}
		if accepted {
			o.logger.Debug("document accepted", "project_id", project.ID, "type", docType, "iteration", i+1)
			break
		}
		doc = revised
		revisions++
	}

	o.metrics.ObserveRefinement(string(docType), revisions)

	completed, err := o.store.SetStatus(ctx, project.ID, docType, planning.StatusCompleted)
	if err != nil {
		// The refined content is already saved; report it as it stands.
		o.logger.Warn("failed to mark document completed",
			"project_id", project.ID,
			"type", docType,
			"error", err,
		)
		doc.Status = planning.StatusCompleted
		return doc, nil
	}

	o.logger.Info("document refined",
		"project_id", project.ID,
		"type", docType,
		"revisions", revisions,
		"revision", completed.Revision,
	)
	return completed, nil
}

// revise runs one evaluate-then-improve iteration.
// It reports accepted when the evaluation met the criteria and nothing was written.
func (o *Orchestrator) revise(ctx context.Context, project *planning.Project, doc *planning.Document, criteria string) (*planning.Document, bool, error) {
	eval, err := o.evaluator.Evaluate(ctx, doc.Content, criteria)
	if err != nil {
		return nil, false, err
	}
	o.metrics.RecordEvaluation(string(doc.Type), eval.Score, eval.MeetsCriteria)
	if eval.MeetsCriteria {
		return doc, true, nil
	}

	improvePrompt := BuildImprovementPrompt(o.cfg.ImprovementPrompt, doc.Type, eval, doc.Content)

	// Plain text: revisions are not schema-guided.
	improved, err := o.generator.Generate(ctx, improvePrompt, o.cfg.PrimaryModel)
	if err != nil {
		o.metrics.RecordGeneration(string(doc.Type), string(planning.SourceAgentRefinement), "error")
		return nil, false, err
	}

	saved, err := o.store.UpsertContent(ctx, &planningSvc.UpsertContentRequest{
		ProjectID: project.ID,
		Type:      doc.Type,
		Content:   improved,
		Source:    planning.SourceAgentRefinement,
	})
	if err != nil {
		o.metrics.RecordGeneration(string(doc.Type), string(planning.SourceAgentRefinement), "error")
		return nil, false, fmt.Errorf("save revision: %w", err)
	}

	o.metrics.RecordGeneration(string(doc.Type), string(planning.SourceAgentRefinement), "ok")
	o.logger.Debug("document revised",
		"project_id", project.ID,
		"type", doc.Type,
		"score", eval.Score,
		"revision", saved.Revision,
	)
	return saved, false, nil
}

// GenerateAll refines every document type in canonical order. Each step
// re-reads the project's documents so it sees the latest content of the
// types before it. The first hard failure stops the run; the documents
// finished so far are returned with the error.
func (o *Orchestrator) GenerateAll(ctx context.Context, project *planning.Project) ([]planning.Document, error) {
	results := make([]planning.Document, 0, len(planning.DocumentTypes))

	for _, docType := range planning.DocumentTypes {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		current, err := o.store.ListDocuments(ctx, project.ID)
		if err != nil {
			return results, fmt.Errorf("list documents: %w", err)
		}

		doc, err := o.Refine(ctx, project, docType, planning.Preceding(current, docType))
		if err != nil {
			o.logger.Error("project generation stopped",
				"project_id", project.ID,
				"type", docType,
				"completed", len(results),
				"error", err,
			)
			return results, err
		}
		results = append(results, *doc)
	}

	o.logger.Info("project generated", "project_id", project.ID, "documents", len(results))
	return results, nil
}
