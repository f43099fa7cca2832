package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"planforge/internal/domain/models/planning"
	domainllm "planforge/internal/domain/services/llm"
	planningSvc "planforge/internal/domain/services/planning"
	"planforge/internal/repository/memory"
	planningService "planforge/internal/service/planning"
)

const testImprovementPrompt = "Revise {{DOCUMENT_NAME}} ({{POSITION}}/{{TOTAL}})\n{{FEEDBACK}}\n{{SUGGESTIONS}}\n---\n{{CONTENT}}"

var errProvider = errors.New("provider unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedTemplates serves the same template body for every type
type fixedTemplates struct {
	body string
}

func (f fixedTemplates) ResolveTemplate(ctx context.Context, templateSet string, docType planning.DocumentType) (*planning.Template, error) {
	return &planning.Template{Name: string(docType), Type: docType, Content: f.body, IsDefault: true}, nil
}

type staticRubrics string

func (r staticRubrics) Rubric(planning.DocumentType) string { return string(r) }

type generateCall struct {
	prompt  string
	model   string
	docType planning.DocumentType
}

// scriptedGenerator answers through fn and records every call
type scriptedGenerator struct {
	mu    sync.Mutex
	calls []generateCall
	fn    func(n int, call generateCall) (string, error)
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt, model string, opts ...domainllm.GenerateOption) (string, error) {
	o := domainllm.ApplyGenerateOptions(opts...)
	call := generateCall{prompt: prompt, model: model, docType: o.DocumentType}

	g.mu.Lock()
	g.calls = append(g.calls, call)
	n := len(g.calls)
	g.mu.Unlock()

	if g.fn == nil {
		return fmt.Sprintf("content %d", n), nil
	}
	return g.fn(n, call)
}

func (g *scriptedGenerator) Calls() []generateCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]generateCall(nil), g.calls...)
}

// scriptedEvaluator answers through fn and records the evaluated content
type scriptedEvaluator struct {
	mu       sync.Mutex
	contents []string
	fn       func(n int, content string) (*planning.Evaluation, error)
}

func (e *scriptedEvaluator) Evaluate(ctx context.Context, content, criteria string) (*planning.Evaluation, error) {
	e.mu.Lock()
	e.contents = append(e.contents, content)
	n := len(e.contents)
	e.mu.Unlock()
	return e.fn(n, content)
}

func (e *scriptedEvaluator) Contents() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.contents...)
}

func rejectAlways(int, string) (*planning.Evaluation, error) {
	return &planning.Evaluation{Score: 4, Feedback: "too vague", ImprovementSuggestions: []string{"add detail"}}, nil
}

func acceptAlways(int, string) (*planning.Evaluation, error) {
	return &planning.Evaluation{Score: 9, Feedback: "good", MeetsCriteria: true}, nil
}

type testEnv struct {
	store        *memory.Store
	docs         planningSvc.DocumentStore
	generator    *scriptedGenerator
	evaluator    *scriptedEvaluator
	orchestrator *Orchestrator
	project      *planning.Project
}

func newTestEnv(t *testing.T, gen *scriptedGenerator, eval *scriptedEvaluator) *testEnv {
	t.Helper()
	store := memory.NewStore()
	logger := discardLogger()
	docs := planningService.NewDocumentStore(store.Documents(), store.Versions(), store.TransactionManager(), nil, logger)

	project := &planning.Project{
		UserID:      "user-1",
		Name:        "Recipe box",
		Description: "An app for saving family recipes.",
		Mode:        planning.ModeStandard,
	}
	require.NoError(t, store.Projects().Create(context.Background(), project))

	orch := NewOrchestrator(
		fixedTemplates{body: "Idea: {{IDEA}}\nRequest: {{PROJECT_REQUEST}}\nSpec: {{TECHNICAL_SPEC}}"},
		gen,
		eval,
		docs,
		staticRubrics("be complete"),
		Config{PrimaryModel: "primary-model", MaxIterations: 3, ImprovementPrompt: testImprovementPrompt},
		nil,
		logger,
	)

	return &testEnv{
		store:        store,
		docs:         docs,
		generator:    gen,
		evaluator:    eval,
		orchestrator: orch,
		project:      project,
	}
}

func (e *testEnv) versions(t *testing.T, doc *planning.Document) []planning.Version {
	t.Helper()
	versions, err := e.store.Versions().ListByDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	return versions
}
