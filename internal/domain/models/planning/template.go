package planning

import "time"

// DefaultTemplateSet names the built-in templates seeded at startup.
const DefaultTemplateSet = "default"

// Template is a reusable prompt for one document type.
// Placeholders use the {{TOKEN}} syntax; see generation.PlaceholderMap.
type Template struct {
	ID          string       `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Type        DocumentType `json:"type" db:"type"`
	Content     string       `json:"content" db:"content"`
	TemplateSet string       `json:"template_set" db:"template_set"`
	IsDefault   bool         `json:"is_default" db:"is_default"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}
