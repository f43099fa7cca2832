package planning

import "context"

// ContentFormat names the format of submitted document content.
type ContentFormat string

const (
	FormatMarkdown ContentFormat = "markdown"
	FormatText     ContentFormat = "text"
	FormatHTML     ContentFormat = "html"
	FormatTipTap   ContentFormat = "tiptap" // editor JSON document
)

// ContentConverter converts submitted content to markdown, the storage format.
//
// Implementations should be stateless and thread-safe.
type ContentConverter interface {
	// Convert transforms input content to markdown.
	Convert(ctx context.Context, input string) (markdown string, err error)

	// Format returns the input format this converter handles.
	Format() ContentFormat
}
