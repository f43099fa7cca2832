package planning

import (
	"context"

	"planforge/internal/domain/models/planning"
)

// VersionRepository defines data access operations for document versions.
// Versions are append-only.
type VersionRepository interface {
	// Create appends a version snapshot
	Create(ctx context.Context, version *planning.Version) error

	// GetByID retrieves a version belonging to documentID
	GetByID(ctx context.Context, id, documentID string) (*planning.Version, error)

	// ListByDocument returns versions newest first
	ListByDocument(ctx context.Context, documentID string) ([]planning.Version, error)
}
