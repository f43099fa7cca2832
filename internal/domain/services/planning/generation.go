package planning

import (
	"context"

	"planforge/internal/domain/models/planning"
)

// GenerationService runs document generation on behalf of a project owner
type GenerationService interface {
	// GenerateDocument generates one document; agent-mode projects are refined
	GenerateDocument(ctx context.Context, projectID, userID string, docType planning.DocumentType) (*planning.Document, error)

	// RefineDocument always runs the generate-evaluate-revise loop
	RefineDocument(ctx context.Context, projectID, userID string, docType planning.DocumentType) (*planning.Document, error)

	// GenerateProject refines every document type in canonical order
	GenerateProject(ctx context.Context, projectID, userID string) ([]planning.Document, error)
}
