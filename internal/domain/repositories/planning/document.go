package planning

import (
	"context"

	"planforge/internal/domain/models/planning"
)

// DocumentRepository defines data access operations for documents
type DocumentRepository interface {
	// Create inserts a document. Returns ConflictError if the (project, type) pair exists.
	Create(ctx context.Context, doc *planning.Document) error

	// GetByType retrieves the current document of a type.
	// Inside a transaction the row is locked until commit.
	GetByType(ctx context.Context, projectID string, docType planning.DocumentType) (*planning.Document, error)

	// ListByProject returns all documents for a project in canonical type order
	ListByProject(ctx context.Context, projectID string) ([]planning.Document, error)

	// Update persists content, status, revision, word count and updated_at
	Update(ctx context.Context, doc *planning.Document) error

	// Delete removes a document and its versions
	Delete(ctx context.Context, projectID string, docType planning.DocumentType) error
}
