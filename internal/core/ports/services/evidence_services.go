package services

import (
	"context"

	"github.com/clubsalud/findoc_backend/internal/core/domain"
	"github.com/clubsalud/findoc_backend/internal/dto"
)

// EvidenceSvcFacade is the engine's view of the evidence store: it registers
// uploaded voucher metadata and answers validity checks on opaque references.
type EvidenceSvcFacade interface {
	// RegisterEvidence records metadata for an uploaded voucher and returns the stored evidence.
	RegisterEvidence(ctx context.Context, req dto.RegisterEvidenceRequest, uploaderActorID string) (*domain.Evidence, error)

	// GetEvidenceByID retrieves evidence metadata.
	GetEvidenceByID(ctx context.Context, evidenceID string) (*domain.Evidence, error)

	// Validate reports whether the reference points at a stored artifact of an
	// accepted content type within the size ceiling. Any failure surfaces as a
	// missing-evidence condition to the caller.
	Validate(ctx context.Context, ref domain.EvidenceRef) error
}
