package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"planforge/internal/domain"
	"planforge/internal/domain/models/planning"
)

type documentRepository struct {
	s *Store
}

func (r *documentRepository) Create(ctx context.Context, doc *planning.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[doc.ProjectID]; !ok {
		return fmt.Errorf("project %s: %w", doc.ProjectID, domain.ErrNotFound)
	}
	if existing := r.findLocked(doc.ProjectID, doc.Type); existing != nil {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("document %s already exists in project %s", doc.Type, doc.ProjectID),
			ResourceType: "document",
			ResourceID:   existing.ID,
		}
	}

	doc.ID = uuid.NewString()
	stored := *doc
	r.s.documents[doc.ID] = &stored
	return nil
}

func (r *documentRepository) GetByType(ctx context.Context, projectID string, docType planning.DocumentType) (*planning.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	doc := r.findLocked(projectID, docType)
	if doc == nil {
		return nil, fmt.Errorf("document %s: %w", docType, domain.ErrNotFound)
	}
	out := *doc
	return &out, nil
}

func (r *documentRepository) ListByProject(ctx context.Context, projectID string) ([]planning.Document, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	docs := []planning.Document{}
	for _, doc := range r.s.documents {
		if doc.ProjectID == projectID {
			docs = append(docs, *doc)
		}
	}
	planning.SortDocuments(docs)
	return docs, nil
}

func (r *documentRepository) Update(ctx context.Context, doc *planning.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.documents[doc.ID]
	if !ok {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}
	stored.Content = doc.Content
	stored.Status = doc.Status
	stored.Revision = doc.Revision
	stored.WordCount = doc.WordCount
	stored.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, projectID string, docType planning.DocumentType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc := r.findLocked(projectID, docType)
	if doc == nil {
		return fmt.Errorf("document %s: %w", docType, domain.ErrNotFound)
	}
	delete(r.s.documents, doc.ID)
	delete(r.s.versions, doc.ID)
	return nil
}

func (r *documentRepository) findLocked(projectID string, docType planning.DocumentType) *planning.Document {
	for _, doc := range r.s.documents {
		if doc.ProjectID == projectID && doc.Type == docType {
			return doc
		}
	}
	return nil
}
