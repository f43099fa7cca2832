package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunGenerate_StandardModeWritesMarkdown(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	out := t.TempDir()

	err := runGenerate(context.Background(), generateOptions{
		name:      "Plant tracker",
		idea:      "Remind people to water their plants.",
		mode:      "standard",
		model:     "lorem-fast",
		evaluator: "lorem-fast",
		out:       out,
		format:    "markdown",
		store:     "memory",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	for _, name := range []string{"project-request.md", "technical-spec.md", "implementation-plan.md"} {
		data, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, data)
	}
}

func TestRunGenerate_AgentModeWritesHTML(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	out := t.TempDir()

	err := runGenerate(context.Background(), generateOptions{
		name:      "Plant tracker",
		idea:      "Remind people to water their plants.",
		mode:      "agent",
		model:     "lorem-fast",
		evaluator: "lorem-fast",
		out:       out,
		format:    "html",
		store:     "memory",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "plant-tracker.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1")
}

func TestRunGenerate_UnknownStore(t *testing.T) {
	err := runGenerate(context.Background(), generateOptions{idea: "x", store: "sqlite"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "unknown store")
}

func TestRunGenerate_UnknownFormatFailsBeforeGenerating(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")

	tests := []struct {
		name   string
		format string
	}{
		{"pdf", "pdf"},
		{"empty", ""},
		{"wrong case", "HTML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "plan")
			err := runGenerate(context.Background(), generateOptions{
				idea:      "Remind people to water their plants.",
				mode:      "standard",
				model:     "lorem-fast",
				evaluator: "lorem-fast",
				out:       out,
				format:    tt.format,
				store:     "memory",
			}, slog.New(slog.NewTextHandler(io.Discard, nil)))
			assert.ErrorContains(t, err, "unknown format")
			assert.NoDirExists(t, out)
		})
	}
}
