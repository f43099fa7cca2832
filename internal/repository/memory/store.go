// Package memory implements the planning repositories on process memory.
// It backs the CLI's offline mode and service tests.
package memory

import (
	"context"
	"sync"

	"planforge/internal/domain/models/planning"
	"planforge/internal/domain/repositories"
	planningRepo "planforge/internal/domain/repositories/planning"
)

// Store holds every entity. Repositories are views over one Store so that
// cascading deletes and transactions span all of them.
type Store struct {
	mu        sync.RWMutex
	projects  map[string]*planning.Project
	documents map[string]*planning.Document // by ID
	versions  map[string][]planning.Version // by document ID, append order
	templates map[string]*planning.Template

	txMu sync.Mutex
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		projects:  make(map[string]*planning.Project),
		documents: make(map[string]*planning.Document),
		versions:  make(map[string][]planning.Version),
		templates: make(map[string]*planning.Template),
	}
}

// Projects returns the project repository view
func (s *Store) Projects() planningRepo.ProjectRepository { return &projectRepository{s: s} }

// Documents returns the document repository view
func (s *Store) Documents() planningRepo.DocumentRepository { return &documentRepository{s: s} }

// Versions returns the version repository view
func (s *Store) Versions() planningRepo.VersionRepository { return &versionRepository{s: s} }

// Templates returns the template repository view
func (s *Store) Templates() planningRepo.TemplateRepository { return &templateRepository{s: s} }

// TransactionManager returns a manager that serializes transactions.
// There is no rollback: a failed function leaves its earlier writes in place.
func (s *Store) TransactionManager() repositories.TransactionManager { return &txManager{s: s} }

type txKey struct{}

type txManager struct {
	s *Store
}

func (m *txManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}
