package planning

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	models "planforge/internal/domain/models/planning"
	planningSvc "planforge/internal/domain/services/planning"
	"planforge/internal/repository/memory"
	"planforge/internal/service/planning/converter"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []planningSvc.DocumentChangedEvent
}

func (p *recordingPublisher) PublishDocumentChanged(ctx context.Context, event *planningSvc.DocumentChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *event)
	return nil
}

func (p *recordingPublisher) Events() []planningSvc.DocumentChangedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]planningSvc.DocumentChangedEvent(nil), p.events...)
}

type testEnv struct {
	store     *memory.Store
	publisher *recordingPublisher
	docs      planningSvc.DocumentStore
	documents planningSvc.DocumentService
	projects  planningSvc.ProjectService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	publisher := &recordingPublisher{}
	logger := discardLogger()

	docs := NewDocumentStore(store.Documents(), store.Versions(), store.TransactionManager(), publisher, logger)
	return &testEnv{
		store:     store,
		publisher: publisher,
		docs:      docs,
		documents: NewDocumentService(docs, store.Projects(), store.Documents(), store.Versions(),
			converter.NewConverterRegistry(), publisher, logger),
		projects: NewProjectService(store.Projects(), logger),
	}
}

func (e *testEnv) createProject(t *testing.T, userID string) *models.Project {
	t.Helper()
	project, err := e.projects.CreateProject(context.Background(), &planningSvc.CreateProjectRequest{
		UserID:      userID,
		Name:        "Task tracker",
		Description: "A task tracker for small teams.",
	})
	require.NoError(t, err)
	return project
}

func intPtr(i int) *int { return &i }
