package utils

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// WithFrontmatter prefixes markdown with a YAML frontmatter block:
// ---
// type: prd
// revision: 3
// ---
// # Markdown content here
func WithFrontmatter(metadata interface{}, markdown string) (string, error) {
	data, err := yaml.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n")
	b.WriteString(markdown)
	return b.String(), nil
}

// ParseFrontmatter splits a document written by WithFrontmatter into its
// metadata and markdown body
func ParseFrontmatter(content []byte) (map[string]interface{}, string, error) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return nil, "", errors.New("missing frontmatter: file must start with '---'")
	}

	lines := bytes.Split(content, []byte("\n"))
	closingDelim := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			closingDelim = i
			break
		}
	}
	if closingDelim == 0 {
		return nil, "", errors.New("missing closing frontmatter delimiter '---'")
	}

	var metadata map[string]interface{}
	if err := yaml.Unmarshal(bytes.Join(lines[1:closingDelim], []byte("\n")), &metadata); err != nil {
		return nil, "", fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}

	return metadata, string(bytes.Join(lines[closingDelim+1:], []byte("\n"))), nil
}
