package converter

import (
	"context"
	"strings"

	planningSvc "planforge/internal/domain/services/planning"
)

// textConverter stores plain text as markdown with normalized line endings.
type textConverter struct{}

// NewTextConverter creates a new text converter.
func NewTextConverter() planningSvc.ContentConverter {
	return &textConverter{}
}

func (c *textConverter) Convert(ctx context.Context, input string) (string, error) {
	return strings.ReplaceAll(input, "\r\n", "\n"), nil
}

func (c *textConverter) Format() planningSvc.ContentFormat {
	return planningSvc.FormatText
}
