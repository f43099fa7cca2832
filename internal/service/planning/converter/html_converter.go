package converter

import (
	"context"
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	planningSvc "planforge/internal/domain/services/planning"
	"planforge/internal/service/planning/converter/sanitizer"
)

// htmlConverter converts pasted HTML to markdown.
// Input is sanitized before conversion.
type htmlConverter struct {
	sanitizer *sanitizer.HTMLSanitizer
	converter *md.Converter
}

// NewHTMLConverter creates a new HTML to markdown converter.
func NewHTMLConverter() planningSvc.ContentConverter {
	return &htmlConverter{
		sanitizer: sanitizer.NewHTMLSanitizer(),
		converter: md.NewConverter("", true, nil),
	}
}

func (c *htmlConverter) Convert(ctx context.Context, input string) (string, error) {
	sanitized := c.sanitizer.Sanitize(input)

	markdown, err := c.converter.ConvertString(sanitized)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	return strings.TrimSpace(markdown), nil
}

func (c *htmlConverter) Format() planningSvc.ContentFormat {
	return planningSvc.FormatHTML
}
