package converter

import (
	"context"

	planningSvc "planforge/internal/domain/services/planning"
)

// markdownConverter passes markdown through unchanged.
type markdownConverter struct{}

// NewMarkdownConverter creates the passthrough converter for markdown input.
func NewMarkdownConverter() planningSvc.ContentConverter {
	return &markdownConverter{}
}

func (c *markdownConverter) Convert(ctx context.Context, input string) (string, error) {
	return input, nil
}

func (c *markdownConverter) Format() planningSvc.ContentFormat {
	return planningSvc.FormatMarkdown
}
