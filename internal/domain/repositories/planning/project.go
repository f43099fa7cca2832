package planning

import (
	"context"

	"planforge/internal/domain/models/planning"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// Create creates a new project and returns it with generated ID and timestamps
	Create(ctx context.Context, project *planning.Project) error

	// GetByID retrieves a project owned by userID
	GetByID(ctx context.Context, id, userID string) (*planning.Project, error)

	// Get retrieves a project regardless of owner (internal consumers only)
	Get(ctx context.Context, id string) (*planning.Project, error)

	// List retrieves all projects for a user, ordered by updated_at DESC
	List(ctx context.Context, userID string) ([]planning.Project, error)

	// Update persists name, description, mode, template set and updated_at
	Update(ctx context.Context, project *planning.Project) error

	// UpdateSummary replaces the derived summary and metadata
	UpdateSummary(ctx context.Context, id, summary string, metadata map[string]interface{}) error

	// Delete removes a project; documents and versions are removed with it
	Delete(ctx context.Context, id, userID string) error
}
