package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planforge/internal/domain"
	"planforge/internal/domain/models/planning"
)

func TestDocuments_ListInCanonicalOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	project := &planning.Project{UserID: "u1", Name: "p"}
	require.NoError(t, s.Projects().Create(ctx, project))

	insertOrder := []planning.DocumentType{
		planning.TypeImplementationPlan,
		planning.TypePRD,
		planning.TypeProjectRequest,
		planning.TypeUIGuide,
		planning.TypeTechnicalSpec,
		planning.TypeUserFlows,
	}
	for _, docType := range insertOrder {
		require.NoError(t, s.Documents().Create(ctx, &planning.Document{ProjectID: project.ID, Type: docType}))
	}

	docs, err := s.Documents().ListByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, docs, len(planning.DocumentTypes))
	for i, doc := range docs {
		assert.Equal(t, planning.DocumentTypes[i], doc.Type)
	}
}

func TestDocuments_OnePerType(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	project := &planning.Project{UserID: "u1", Name: "p"}
	require.NoError(t, s.Projects().Create(ctx, project))

	require.NoError(t, s.Documents().Create(ctx, &planning.Document{ProjectID: project.ID, Type: planning.TypePRD}))
	err := s.Documents().Create(ctx, &planning.Document{ProjectID: project.ID, Type: planning.TypePRD})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProjectDelete_Cascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	project := &planning.Project{UserID: "u1", Name: "p"}
	require.NoError(t, s.Projects().Create(ctx, project))

	doc := &planning.Document{ProjectID: project.ID, Type: planning.TypePRD}
	require.NoError(t, s.Documents().Create(ctx, doc))
	require.NoError(t, s.Versions().Create(ctx, &planning.Version{DocumentID: doc.ID, Content: "old", Source: planning.SourceManual}))

	require.NoError(t, s.Projects().Delete(ctx, project.ID, "u1"))

	_, err := s.Documents().GetByType(ctx, project.ID, planning.TypePRD)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	versions, err := s.Versions().ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestVersions_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	project := &planning.Project{UserID: "u1", Name: "p"}
	require.NoError(t, s.Projects().Create(ctx, project))
	doc := &planning.Document{ProjectID: project.ID, Type: planning.TypePRD}
	require.NoError(t, s.Documents().Create(ctx, doc))

	now := time.Now()
	for i, content := range []string{"a", "b", "c"} {
		require.NoError(t, s.Versions().Create(ctx, &planning.Version{
			DocumentID: doc.ID, Content: content, Source: planning.SourceManual, Revision: i + 1, CreatedAt: now,
		}))
	}

	versions, err := s.Versions().ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, "c", versions[0].Content)
	assert.Equal(t, "a", versions[2].Content)
}

func TestProjects_ScopedByUser(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	project := &planning.Project{UserID: "owner", Name: "p"}
	require.NoError(t, s.Projects().Create(ctx, project))

	_, err := s.Projects().GetByID(ctx, project.ID, "someone-else")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = s.Projects().Delete(ctx, project.ID, "someone-else")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
