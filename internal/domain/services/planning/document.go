package planning

import (
	"context"

	"planforge/internal/domain/models/planning"
)

// DocumentStore is the persistence surface the generation pipeline writes through.
type DocumentStore interface {
	// UpsertContent snapshots the previous content as a Version tagged with
	// source, then overwrites the document. The first write for a
	// (project, type) pair creates the document without a version.
	// A non-nil expectedRevision must match the stored revision or the
	// call fails with a ConflictError.
	UpsertContent(ctx context.Context, req *UpsertContentRequest) (*planning.Document, error)

	// ListDocuments returns current documents in canonical type order
	ListDocuments(ctx context.Context, projectID string) ([]planning.Document, error)

	// SetStatus updates a document's status and returns the stored document
	SetStatus(ctx context.Context, projectID string, docType planning.DocumentType, status planning.DocumentStatus) (*planning.Document, error)
}

// UpsertContentRequest carries one document write
type UpsertContentRequest struct {
	ProjectID        string
	Type             planning.DocumentType
	Content          string
	Source           planning.VersionSource
	ExpectedRevision *int
}

// UpdateContentRequest is a manual edit from the API
type UpdateContentRequest struct {
	ProjectID        string `json:"-"`
	UserID           string `json:"-"`
	Type             string `json:"-"`
	Content          string `json:"content"`
	Format           string `json:"format,omitempty"` // markdown (default), text, html or tiptap
	ExpectedRevision *int   `json:"expected_revision,omitempty"`
}

// UpdateStatusRequest changes a document's status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// DocumentService defines user-facing document operations.
// Every call is scoped through the owning project.
type DocumentService interface {
	ListDocuments(ctx context.Context, projectID, userID string) ([]planning.Document, error)
	GetDocument(ctx context.Context, projectID, userID string, docType planning.DocumentType) (*planning.Document, error)
	UpdateContent(ctx context.Context, req *UpdateContentRequest) (*planning.Document, error)
	SetStatus(ctx context.Context, projectID, userID string, docType planning.DocumentType, req *UpdateStatusRequest) (*planning.Document, error)
	DeleteDocument(ctx context.Context, projectID, userID string, docType planning.DocumentType) error

	// ListVersions returns the document's history, newest first
	ListVersions(ctx context.Context, projectID, userID string, docType planning.DocumentType) ([]planning.Version, error)

	// RestoreVersion makes a past version current again, versioning the content it replaces
	RestoreVersion(ctx context.Context, projectID, userID string, docType planning.DocumentType, versionID string) (*planning.Document, error)
}
