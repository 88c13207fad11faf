package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clubsalud/findoc_backend/internal/apperrors"
	"github.com/clubsalud/findoc_backend/internal/core/domain"
	portsrepo "github.com/clubsalud/findoc_backend/internal/core/ports/repositories"
	portssvc "github.com/clubsalud/findoc_backend/internal/core/ports/services"
	"github.com/clubsalud/findoc_backend/internal/dto"
	"github.com/clubsalud/findoc_backend/internal/middleware"
)

// evidenceService is the engine's evidence-store collaborator. It keeps only
// validated metadata; voucher bytes live behind the storage key.
type evidenceService struct {
	evidenceRepo  portsrepo.EvidenceRepositoryFacade
	maxSizeBytes  int64
	acceptedTypes map[string]struct{}
}

// NewEvidenceService creates a new evidence store service.
func NewEvidenceService(evidenceRepo portsrepo.EvidenceRepositoryFacade, maxSizeBytes int64, acceptedTypes []string) portssvc.EvidenceSvcFacade {
	set := make(map[string]struct{}, len(acceptedTypes))
	for _, t := range acceptedTypes {
		set[t] = struct{}{}
	}
	return &evidenceService{
		evidenceRepo:  evidenceRepo,
		maxSizeBytes:  maxSizeBytes,
		acceptedTypes: set,
	}
}

// Ensure evidenceService implements the portssvc.EvidenceSvcFacade interface
var _ portssvc.EvidenceSvcFacade = (*evidenceService)(nil)

// RegisterEvidence records metadata for an uploaded voucher. Uploads outside
// the accepted content types or size ceiling are rejected here, before any
// payment can reference them.
func (s *evidenceService) RegisterEvidence(ctx context.Context, req dto.RegisterEvidenceRequest, uploaderActorID string) (*domain.Evidence, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, ok := s.acceptedTypes[req.ContentType]; !ok {
		return nil, fmt.Errorf("%w: content type %s is not accepted as payment evidence", apperrors.ErrValidation, req.ContentType)
	}
	if req.SizeBytes <= 0 || req.SizeBytes > s.maxSizeBytes {
		return nil, fmt.Errorf("%w: evidence size %d exceeds the %d byte ceiling", apperrors.ErrValidation, req.SizeBytes, s.maxSizeBytes)
	}

	evidenceID := uuid.NewString()
	evidence := domain.Evidence{
		EvidenceID:  evidenceID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		StorageKey:  fmt.Sprintf("evidence/%s/%s", evidenceID, req.FileName),
		UploadedBy:  uploaderActorID,
		UploadedAt:  time.Now().UTC(),
	}

	if err := s.evidenceRepo.SaveEvidence(ctx, evidence); err != nil {
		logger.Error("Failed to save evidence metadata", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save evidence: %w", err)
	}

	logger.Info("Evidence registered", slog.String("evidence_id", evidence.EvidenceID), slog.String("content_type", evidence.ContentType))
	return &evidence, nil
}

// GetEvidenceByID retrieves evidence metadata.
func (s *evidenceService) GetEvidenceByID(ctx context.Context, evidenceID string) (*domain.Evidence, error) {
	evidence, err := s.evidenceRepo.FindEvidenceByID(ctx, evidenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to find evidence %s: %w", evidenceID, err)
	}
	return evidence, nil
}

// Validate answers the engine's evidence contract: the reference must point
// at a stored artifact of an accepted content type within the size ceiling.
// Every failure mode collapses into the missing-evidence condition.
func (s *evidenceService) Validate(ctx context.Context, ref domain.EvidenceRef) error {
	if ref.IsZero() {
		return ErrMissingEvidence
	}

	evidence, err := s.evidenceRepo.FindEvidenceByID(ctx, ref.EvidenceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: evidence %s does not exist", ErrMissingEvidence, ref.EvidenceID)
		}
		return fmt.Errorf("failed to validate evidence %s: %w", ref.EvidenceID, err)
	}

	if _, ok := s.acceptedTypes[evidence.ContentType]; !ok {
		return fmt.Errorf("%w: evidence %s has unaccepted content type %s", ErrMissingEvidence, ref.EvidenceID, evidence.ContentType)
	}
	if evidence.SizeBytes <= 0 || evidence.SizeBytes > s.maxSizeBytes {
		return fmt.Errorf("%w: evidence %s is outside the size ceiling", ErrMissingEvidence, ref.EvidenceID)
	}

	return nil
}
