package planning

import "time"

// VersionSource tags what caused a document's content to be overwritten.
type VersionSource string

const (
	SourceManual          VersionSource = "manual"
	SourceAIGenerator     VersionSource = "ai-generator"
	SourceAgentRefinement VersionSource = "agent-refinement"
)

// Valid reports whether s is a known source.
func (s VersionSource) Valid() bool {
	switch s {
	case SourceManual, SourceAIGenerator, SourceAgentRefinement:
		return true
	}
	return false
}

// Version is an immutable snapshot of content a document held before it was overwritten.
type Version struct {
	ID         string        `json:"id" db:"id"`
	DocumentID string        `json:"document_id" db:"document_id"`
	Content    string        `json:"content" db:"content"`
	Source     VersionSource `json:"source" db:"source"`
	Revision   int           `json:"revision" db:"revision"` // document revision the snapshot was taken from
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}
