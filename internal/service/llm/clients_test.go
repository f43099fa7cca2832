package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planforge/internal/domain"
	"planforge/internal/domain/models/planning"
	domainllm "planforge/internal/domain/services/llm"
	"planforge/internal/metrics"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStubRegistry(replies ...stubReply) (*ProviderRegistry, *stubProvider) {
	stub := &stubProvider{replies: replies}
	registry := NewProviderRegistry(nil)
	registry.Register(stub)
	return registry, stub
}

func TestGenerate_StructuredExtraction(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		expected string
	}{
		{"main field", `{"prd": "# PRD"}`, "# PRD"},
		{"generic field", `{"content": "# Generic"}`, "# Generic"},
		{"unstructured object", `{"text": "# Loose"}`, "# Loose"},
		{"not json", "# Plain", "# Plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, stub := newStubRegistry(stubReply{text: tt.reply})
			client := NewGenerationClient(registry, ClientConfig{System: "sys"}, nil, discardLogger())

			out, err := client.Generate(context.Background(), "write", "stub/stub-1", domainllm.WithDocumentType(planning.TypePRD))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)

			req := stub.lastRequest()
			require.NotNil(t, req.Schema)
			assert.Equal(t, "prd", req.Schema.Field)
			assert.Equal(t, "sys", req.System)
			assert.Equal(t, "stub-1", req.Model)
		})
	}
}

func TestGenerate_PlainTextHasNoSchema(t *testing.T) {
	registry, stub := newStubRegistry(stubReply{text: `{"prd": "kept verbatim"}`})
	client := NewGenerationClient(registry, ClientConfig{}, nil, discardLogger())

	out, err := client.Generate(context.Background(), "improve", "stub/stub-1")
	require.NoError(t, err)
	assert.Equal(t, `{"prd": "kept verbatim"}`, out)
	assert.Nil(t, stub.lastRequest().Schema)
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("provider failure", func(t *testing.T) {
		registry, _ := newStubRegistry(stubReply{err: errors.New("connection reset")})
		m := metrics.New()
		client := NewGenerationClient(registry, ClientConfig{}, m, discardLogger())

		_, err := client.Generate(context.Background(), "p", "stub/stub-1")
		var genErr *domain.GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.ErrorIs(t, err, domain.ErrGeneration)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("empty reply", func(t *testing.T) {
		registry, _ := newStubRegistry(stubReply{text: "  "})
		client := NewGenerationClient(registry, ClientConfig{}, nil, discardLogger())

		_, err := client.Generate(context.Background(), "p", "stub/stub-1", domainllm.WithDocumentType(planning.TypePRD))
		assert.ErrorIs(t, err, domain.ErrGeneration)
	})

	t.Run("json reply with empty field", func(t *testing.T) {
		registry, _ := newStubRegistry(stubReply{text: `{"prd": ""}`})
		client := NewGenerationClient(registry, ClientConfig{}, nil, discardLogger())

		_, err := client.Generate(context.Background(), "p", "stub/stub-1", domainllm.WithDocumentType(planning.TypePRD))
		var genErr *domain.GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, "response contained no text", genErr.Message)
	})

	t.Run("unknown model", func(t *testing.T) {
		registry, _ := newStubRegistry()
		client := NewGenerationClient(registry, ClientConfig{}, nil, discardLogger())

		_, err := client.Generate(context.Background(), "p", "mystery-model")
		assert.ErrorIs(t, err, domain.ErrGeneration)
	})
}

type blockingProvider struct{ stubProvider }

func (p *blockingProvider) Complete(ctx context.Context, req *domainllm.CompletionRequest) (*domainllm.CompletionResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestGenerate_Timeout(t *testing.T) {
	registry := NewProviderRegistry(nil)
	registry.Register(&blockingProvider{})
	client := NewGenerationClient(registry, ClientConfig{Timeout: 20 * time.Millisecond}, nil, discardLogger())

	_, err := client.Generate(context.Background(), "p", "stub/stub-1")
	assert.ErrorIs(t, err, domain.ErrGeneration)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEvaluate(t *testing.T) {
	t.Run("parses reply and fills template", func(t *testing.T) {
		registry, stub := newStubRegistry(stubReply{
			text: `{"score": 9, "feedback": "great", "meets_criteria": true, "improvement_suggestions": []}`,
		})
		client := NewEvaluationClient(registry, "stub/stub-eval", "Rubric: {{CRITERIA}}\n---\n{{CONTENT}}", ClientConfig{}, nil, discardLogger())

		eval, err := client.Evaluate(context.Background(), "the doc", "be clear")
		require.NoError(t, err)
		assert.Equal(t, 9, eval.Score)
		assert.True(t, eval.MeetsCriteria)

		req := stub.lastRequest()
		assert.Equal(t, "Rubric: be clear\n---\nthe doc", req.Prompt)
		require.NotNil(t, req.Schema)
		assert.Equal(t, "evaluation", req.Schema.Name)
	})

	t.Run("non-json reply degrades", func(t *testing.T) {
		registry, _ := newStubRegistry(stubReply{text: "looks good"})
		client := NewEvaluationClient(registry, "stub/stub-eval", "{{CONTENT}}", ClientConfig{}, nil, discardLogger())

		eval, err := client.Evaluate(context.Background(), "doc", "rubric")
		require.NoError(t, err)
		assert.Equal(t, &planning.Evaluation{
			Score:                  5,
			Feedback:               "looks good",
			MeetsCriteria:          false,
			ImprovementSuggestions: []string{ParseFailureNotice},
		}, eval)
	})

	t.Run("transport failure", func(t *testing.T) {
		registry, _ := newStubRegistry(stubReply{err: errors.New("dial tcp: refused")})
		client := NewEvaluationClient(registry, "stub/stub-eval", "{{CONTENT}}", ClientConfig{}, nil, discardLogger())

		_, err := client.Evaluate(context.Background(), "doc", "rubric")
		var evalErr *domain.EvaluationError
		require.ErrorAs(t, err, &evalErr)
		assert.ErrorIs(t, err, domain.ErrEvaluation)
	})
}
