package planning

import (
	"context"

	"planforge/internal/domain/models/planning"
)

// TemplateRepository defines data access operations for prompt templates
type TemplateRepository interface {
	Create(ctx context.Context, tmpl *planning.Template) error
	GetByID(ctx context.Context, id string) (*planning.Template, error)

	// List returns templates ordered by type then name. An empty docType lists all.
	List(ctx context.Context, docType planning.DocumentType) ([]planning.Template, error)

	Update(ctx context.Context, tmpl *planning.Template) error
	Delete(ctx context.Context, id string) error

	// GetDefault returns the template flagged default for a type
	GetDefault(ctx context.Context, docType planning.DocumentType) (*planning.Template, error)

	// GetForSet returns the most recently updated template of a set for a type
	GetForSet(ctx context.Context, templateSet string, docType planning.DocumentType) (*planning.Template, error)

	// ClearDefault unflags every default template of a type
	ClearDefault(ctx context.Context, docType planning.DocumentType) error

	// Count returns the total number of templates
	Count(ctx context.Context) (int, error)
}
