package planning

import (
	"context"
	"time"

	"planforge/internal/domain/models/planning"
)

// DocumentChangedEvent is published after a document write commits.
type DocumentChangedEvent struct {
	ProjectID  string                 `json:"project_id"`
	DocumentID string                 `json:"document_id,omitempty"`
	Type       planning.DocumentType  `json:"type"`
	Source     planning.VersionSource `json:"source,omitempty"` // empty for status changes and deletes
	Revision   int                    `json:"revision"`
	Deleted    bool                   `json:"deleted,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// DocumentEventPublisher announces committed document changes.
// Publishing is best effort; a failure never undoes the write.
type DocumentEventPublisher interface {
	PublishDocumentChanged(ctx context.Context, event *DocumentChangedEvent) error
}
