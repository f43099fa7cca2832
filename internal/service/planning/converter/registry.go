package converter

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"planforge/internal/domain"
	planningSvc "planforge/internal/domain/services/planning"
)

// ConverterRegistry routes submitted content to a converter by format.
//
// Thread-safe for concurrent access.
type ConverterRegistry struct {
	mu         sync.RWMutex
	converters map[planningSvc.ContentFormat]planningSvc.ContentConverter
}

// NewConverterRegistry creates a registry with the standard converters registered.
func NewConverterRegistry() *ConverterRegistry {
	registry := &ConverterRegistry{
		converters: make(map[planningSvc.ContentFormat]planningSvc.ContentConverter),
	}

	registry.Register(NewMarkdownConverter())
	registry.Register(NewTextConverter())
	registry.Register(NewHTMLConverter())
	registry.Register(NewTipTapConverter())

	return registry
}

// Register adds or replaces the converter for its format.
func (r *ConverterRegistry) Register(converter planningSvc.ContentConverter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[converter.Format()] = converter
}

// Convert converts content in the named format to markdown.
// An empty format means markdown.
func (r *ConverterRegistry) Convert(ctx context.Context, format, content string) (string, error) {
	f := planningSvc.ContentFormat(strings.ToLower(strings.TrimSpace(format)))
	if f == "" {
		f = planningSvc.FormatMarkdown
	}

	r.mu.RLock()
	converter, ok := r.converters[f]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: unsupported content format: %s", domain.ErrValidation, format)
	}

	return converter.Convert(ctx, content)
}
