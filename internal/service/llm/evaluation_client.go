package llm

import (
	"context"
	"log/slog"
	"time"

	"planforge/internal/config"
	"planforge/internal/domain"
	"planforge/internal/domain/models/planning"
	domainllm "planforge/internal/domain/services/llm"
	"planforge/internal/metrics"
	"planforge/internal/service/prompt"
)

// evaluationClient implements the EvaluationClient interface
type evaluationClient struct {
	registry *ProviderRegistry
	model    string
	template string // placeholders: CRITERIA, CONTENT
	cfg      ClientConfig
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewEvaluationClient creates an evaluation client that judges content with model.
// template receives the rubric as {{CRITERIA}} and the content as {{CONTENT}}.
func NewEvaluationClient(
	registry *ProviderRegistry,
	model string,
	template string,
	cfg ClientConfig,
	m *metrics.Metrics,
	logger *slog.Logger,
) domainllm.EvaluationClient {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = config.EvaluationMaxOutputTokens
	}
	return &evaluationClient{
		registry: registry,
		model:    model,
		template: template,
		cfg:      cfg,
		metrics:  m,
		logger:   logger,
	}
}

// Evaluate scores content against criteria
func (c *evaluationClient) Evaluate(ctx context.Context, content, criteria string) (*planning.Evaluation, error) {
	provider, providerModel, err := c.registry.ResolveModel(c.model)
	if err != nil {
		return nil, &domain.EvaluationError{Model: c.model, Message: "model unavailable", Err: err}
	}

	req := &domainllm.CompletionRequest{
		Model:  providerModel,
		System: c.cfg.System,
		Prompt: prompt.Resolve(c.template, map[string]string{
			"CRITERIA": criteria,
			"CONTENT":  content,
		}),
		MaxTokens: c.cfg.MaxTokens,
		Schema:    EvaluationSchema(),
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := provider.Complete(ctx, req)
	c.metrics.ObserveLLMRequest(provider.Name(), "evaluate", time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordLLMError("evaluate")
		return nil, &domain.EvaluationError{Model: c.model, Message: "provider call failed", Err: err}
	}

	eval, ok := ParseEvaluation(resp.Text)
	if !ok {
		c.logger.Warn("evaluation reply was not JSON; using neutral result",
			"model", c.model,
			"reply_length", len(resp.Text),
		)
		return DegradedEvaluation(resp.Text), nil
	}

	c.logger.Debug("evaluation complete",
		"model", c.model,
		"score", eval.Score,
		"meets_criteria", eval.MeetsCriteria,
		"suggestions", len(eval.ImprovementSuggestions),
	)
	return eval, nil
}
