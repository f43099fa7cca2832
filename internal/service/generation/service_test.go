package generation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planforge/internal/domain"
	"planforge/internal/domain/models/planning"
)

func TestGenerationService_DispatchesOnMode(t *testing.T) {
	tests := []struct {
		name           string
		mode           planning.GenerationMode
		expectedStatus planning.DocumentStatus
		expectedEvals  int
	}{
		{"standard generates once", planning.ModeStandard, planning.StatusDraft, 0},
		{"agent refines", planning.ModeAgent, planning.StatusCompleted, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := &scriptedEvaluator{fn: acceptAlways}
			env := newTestEnv(t, &scriptedGenerator{}, eval)
			env.project.Mode = tt.mode
			require.NoError(t, env.store.Projects().Update(context.Background(), env.project))

			svc := NewGenerationService(env.orchestrator, env.store.Projects(), env.docs, discardLogger())
			doc, err := svc.GenerateDocument(context.Background(), env.project.ID, "user-1", planning.TypePRD)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, doc.Status)
			assert.Len(t, eval.Contents(), tt.expectedEvals)
		})
	}
}

func TestGenerationService_PassesPrecedingDocuments(t *testing.T) {
	gen := &scriptedGenerator{fn: func(n int, call generateCall) (string, error) {
		return "body of " + string(call.docType), nil
	}}
	env := newTestEnv(t, gen, &scriptedEvaluator{fn: acceptAlways})
	svc := NewGenerationService(env.orchestrator, env.store.Projects(), env.docs, discardLogger())
	ctx := context.Background()

	_, err := svc.GenerateDocument(ctx, env.project.ID, "user-1", planning.TypeTechnicalSpec)
	require.NoError(t, err)
	_, err = svc.GenerateDocument(ctx, env.project.ID, "user-1", planning.TypeProjectRequest)
	require.NoError(t, err)

	// Regenerating the earlier type must not see the later one.
	_, err = svc.RefineDocument(ctx, env.project.ID, "user-1", planning.TypeProjectRequest)
	require.NoError(t, err)

	calls := gen.Calls()
	require.Len(t, calls, 3)
	assert.Contains(t, calls[2].prompt, "Spec: {{TECHNICAL_SPEC}}")
}

func TestGenerationService_ScopedToOwner(t *testing.T) {
	env := newTestEnv(t, &scriptedGenerator{}, &scriptedEvaluator{fn: acceptAlways})
	svc := NewGenerationService(env.orchestrator, env.store.Projects(), env.docs, discardLogger())
	ctx := context.Background()

	_, err := svc.GenerateDocument(ctx, env.project.ID, "someone-else", planning.TypePRD)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GenerateProject(ctx, env.project.ID, "someone-else")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerationService_GenerateProject(t *testing.T) {
	env := newTestEnv(t, &scriptedGenerator{}, &scriptedEvaluator{fn: acceptAlways})
	svc := NewGenerationService(env.orchestrator, env.store.Projects(), env.docs, discardLogger())

	docs, err := svc.GenerateProject(context.Background(), env.project.ID, "user-1")
	require.NoError(t, err)
	assert.Len(t, docs, len(planning.DocumentTypes))
}
