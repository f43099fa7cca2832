package planning

import "context"

// ExportFormat selects the rendering of a project export
type ExportFormat string

const (
	ExportMarkdown ExportFormat = "markdown"
	ExportHTML     ExportFormat = "html"
	ExportZip      ExportFormat = "zip" // one markdown file per document, with frontmatter
)

// Export is a rendered project bundle
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders all of a project's documents as one file
type ExportService interface {
	ExportProject(ctx context.Context, projectID, userID string, format ExportFormat) (*Export, error)
}
