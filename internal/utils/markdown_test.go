package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		expected int
	}{
		{"empty", "", 0},
		{"whitespace", "  \n\t", 0},
		{"plain sentence", "one two three", 3},
		{"emphasis does not split words", "**bold** and _italic_", 3},
		{"heading markers are not words", "# Title\n\nBody text", 3},
		{"list markers are not words", "- alpha\n- beta\n1. gamma", 3},
		{"code blocks are skipped", "intro\n\n```go\nfunc main() {}\n```\n\noutro", 2},
		{"links count their label", "see [the docs](https://example.com)", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CountWords(tt.markdown))
		})
	}
}

func TestFirstParagraph(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		expected string
	}{
		{"none", "# Only a heading", ""},
		{"skips heading", "# Title\n\nA **task** tracker\nfor teams.\n\nSecond.", "A task tracker for teams."},
		{"skips list", "- item\n\nAfter the list.", "After the list."},
		{"nested in blockquote", "> Quoted idea.", "Quoted idea."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FirstParagraph(tt.markdown))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))

	long := strings.Repeat("word ", 40)
	out := Truncate(long, 50)
	assert.LessOrEqual(t, len([]rune(out)), 50)
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.False(t, strings.Contains(out, "wor..."), "cut at a word boundary")
}
