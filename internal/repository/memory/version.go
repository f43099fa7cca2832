package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"planforge/internal/domain"
	"planforge/internal/domain/models/planning"
)

type versionRepository struct {
	s *Store
}

func (r *versionRepository) Create(ctx context.Context, version *planning.Version) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.documents[version.DocumentID]; !ok {
		return fmt.Errorf("document %s: %w", version.DocumentID, domain.ErrNotFound)
	}
	version.ID = uuid.NewString()
	r.s.versions[version.DocumentID] = append(r.s.versions[version.DocumentID], *version)
	return nil
}

func (r *versionRepository) GetByID(ctx context.Context, id, documentID string) (*planning.Version, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, v := range r.s.versions[documentID] {
		if v.ID == id {
			out := v
			return &out, nil
		}
	}
	return nil, fmt.Errorf("version %s: %w", id, domain.ErrNotFound)
}

// ListByDocument returns versions newest first. Append order breaks timestamp ties.
func (r *versionRepository) ListByDocument(ctx context.Context, documentID string) ([]planning.Version, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stored := r.s.versions[documentID]
	versions := make([]planning.Version, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		versions = append(versions, stored[i])
	}
	return versions, nil
}
