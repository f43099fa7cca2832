package planning

import "time"

// DocumentStatus is the review state of a document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusCompleted DocumentStatus = "completed"
)

// Document is the current content of one document type within a project.
// A project holds at most one document per type.
type Document struct {
	ID        string         `json:"id" db:"id"`
	ProjectID string         `json:"project_id" db:"project_id"`
	Type      DocumentType   `json:"type" db:"type"`
	Content   string         `json:"content" db:"content"`
	Status    DocumentStatus `json:"status" db:"status"`
	Revision  int            `json:"revision" db:"revision"` // incremented on every overwrite
	WordCount int            `json:"word_count" db:"word_count"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}
