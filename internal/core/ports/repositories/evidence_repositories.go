package repositories

import (
	"context"

	"github.com/clubsalud/findoc_backend/internal/core/domain"
)

// EvidenceRepositoryFacade persists evidence metadata. Byte storage lives
// behind the storage key and is not this repository's concern.
type EvidenceRepositoryFacade interface {
	// SaveEvidence persists evidence metadata.
	SaveEvidence(ctx context.Context, evidence domain.Evidence) error

	// FindEvidenceByID retrieves evidence metadata by its identifier.
	FindEvidenceByID(ctx context.Context, evidenceID string) (*domain.Evidence, error)
}
