package planning

import (
	"context"

	"planforge/internal/domain/models/planning"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Mode        string `json:"mode"`
	TemplateSet string `json:"template_set"`
}

// UpdateProjectRequest represents a partial update; nil fields are left unchanged
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Mode        *string `json:"mode"`
	TemplateSet *string `json:"template_set"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*planning.Project, error)
	GetProject(ctx context.Context, id, userID string) (*planning.Project, error)
	ListProjects(ctx context.Context, userID string) ([]planning.Project, error)
	UpdateProject(ctx context.Context, id, userID string, req *UpdateProjectRequest) (*planning.Project, error)

	// DeleteProject removes the project with all of its documents and versions
	DeleteProject(ctx context.Context, id, userID string) error
}

// SummaryService keeps a project's derived summary and metadata current
type SummaryService interface {
	RefreshSummary(ctx context.Context, projectID string) (*planning.Project, error)
}
