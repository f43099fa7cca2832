package planning

import (
	"context"

	"planforge/internal/domain/models/planning"
)

// CreateTemplateRequest represents a request to create a template
type CreateTemplateRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Content     string `json:"content"`
	TemplateSet string `json:"template_set"`
	IsDefault   bool   `json:"is_default"`
}

// UpdateTemplateRequest replaces a template's name and content
type UpdateTemplateRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// TemplateSource resolves the prompt template used to generate a document type
type TemplateSource interface {
	// ResolveTemplate returns the template of templateSet for docType when one
	// exists, otherwise the default template for docType.
	ResolveTemplate(ctx context.Context, templateSet string, docType planning.DocumentType) (*planning.Template, error)
}

// TemplateService defines business logic operations for templates
type TemplateService interface {
	TemplateSource

	ListTemplates(ctx context.Context, docType string) ([]planning.Template, error)
	GetTemplate(ctx context.Context, id string) (*planning.Template, error)
	CreateTemplate(ctx context.Context, req *CreateTemplateRequest) (*planning.Template, error)
	UpdateTemplate(ctx context.Context, id string, req *UpdateTemplateRequest) (*planning.Template, error)
	DeleteTemplate(ctx context.Context, id string) error

	// SetDefault flags the template as its type's default and unflags the previous one
	SetDefault(ctx context.Context, id string) (*planning.Template, error)

	// EnsureDefaults seeds the built-in templates when the store holds none.
	// Returns the number of templates inserted.
	EnsureDefaults(ctx context.Context) (int, error)
}
