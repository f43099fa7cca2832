package planning

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planforge/internal/domain"
	models "planforge/internal/domain/models/planning"
	planningSvc "planforge/internal/domain/services/planning"
	"planforge/internal/utils"
)

func TestExportProject(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	project := env.createProject(t, "u1")

	writes := map[models.DocumentType]string{
		models.TypeUIGuide:        "Use <script>alert(1)</script> blue.",
		models.TypeProjectRequest: "Build a **tracker**.",
	}
	for docType, content := range writes {
		_, err := env.docs.UpsertContent(ctx, &planningSvc.UpsertContentRequest{
			ProjectID: project.ID, Type: docType, Content: content, Source: models.SourceAIGenerator,
		})
		require.NoError(t, err)
	}

	svc := NewExportService(env.store.Projects(), env.store.Documents(), discardLogger())

	t.Run("markdown bundle in canonical order", func(t *testing.T) {
		export, err := svc.ExportProject(ctx, project.ID, "u1", planningSvc.ExportMarkdown)
		require.NoError(t, err)
		body := string(export.Body)

		assert.Equal(t, "task-tracker.md", export.Filename)
		assert.True(t, strings.HasPrefix(body, "# Task tracker\n"))
		request := strings.Index(body, "## Project Request")
		guide := strings.Index(body, "## UI Guide")
		require.NotEqual(t, -1, request)
		assert.Less(t, request, guide)
	})

	t.Run("html is sanitized", func(t *testing.T) {
		export, err := svc.ExportProject(ctx, project.ID, "u1", planningSvc.ExportHTML)
		require.NoError(t, err)
		body := string(export.Body)

		assert.Equal(t, "text/html; charset=utf-8", export.ContentType)
		assert.Contains(t, body, "<strong>tracker</strong>")
		assert.Contains(t, body, "<h2>Project Request</h2>")
		assert.NotContains(t, body, "<script>")
	})

	t.Run("zip holds one file per document", func(t *testing.T) {
		export, err := svc.ExportProject(ctx, project.ID, "u1", planningSvc.ExportZip)
		require.NoError(t, err)
		assert.Equal(t, "task-tracker.zip", export.Filename)

		archive, err := zip.NewReader(bytes.NewReader(export.Body), int64(len(export.Body)))
		require.NoError(t, err)
		require.Len(t, archive.File, 2)
		assert.Equal(t, "01-project-request.md", archive.File[0].Name)
		assert.Equal(t, "05-ui-guide.md", archive.File[1].Name)

		f, err := archive.File[0].Open()
		require.NoError(t, err)
		defer f.Close()
		data, err := io.ReadAll(f)
		require.NoError(t, err)

		meta, body, err := utils.ParseFrontmatter(data)
		require.NoError(t, err)
		assert.Equal(t, "project-request", meta["type"])
		assert.Equal(t, "draft", meta["status"])
		assert.Equal(t, 1, meta["revision"])
		assert.Equal(t, "Build a **tracker**.\n", body)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := svc.ExportProject(ctx, project.ID, "u1", "pdf")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("other users cannot export", func(t *testing.T) {
		_, err := svc.ExportProject(ctx, project.ID, "u2", planningSvc.ExportMarkdown)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
