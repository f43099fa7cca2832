package utils

import (
	"strings"
)

// CountWords counts the words a reader sees in a markdown document.
// Fenced and indented code is not counted.
func CountWords(markdown string) int {
	if strings.TrimSpace(markdown) == "" {
		return 0
	}
	return len(strings.Fields(PlainText(markdown)))
}
