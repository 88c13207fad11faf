package pgsql

import (
	"context"
	"errors"

	"github.com/clubsalud/findoc_backend/internal/apperrors"
	"github.com/clubsalud/findoc_backend/internal/core/domain"
	portsrepo "github.com/clubsalud/findoc_backend/internal/core/ports/repositories"
	"github.com/clubsalud/findoc_backend/internal/models"
	"github.com/clubsalud/findoc_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxEvidenceRepository persists evidence metadata.
type PgxEvidenceRepository struct {
	BaseRepository
}

// NewEvidenceRepository creates a new repository for evidence metadata.
func NewEvidenceRepository(pool *pgxpool.Pool) portsrepo.EvidenceRepositoryFacade {
	return &PgxEvidenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEvidenceRepository implements portsrepo.EvidenceRepositoryFacade
var _ portsrepo.EvidenceRepositoryFacade = (*PgxEvidenceRepository)(nil)

// SaveEvidence persists the metadata record of an uploaded file.
func (r *PgxEvidenceRepository) SaveEvidence(ctx context.Context, evidence domain.Evidence) error {
	m := mapping.ToModelEvidence(evidence)
	query := `
		INSERT INTO evidence (evidence_id, file_name, content_type, size_bytes, storage_key, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EvidenceID, m.FileName, m.ContentType, m.SizeBytes, m.StorageKey, m.UploadedBy, m.UploadedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert evidence "+m.EvidenceID, err)
	}
	return nil
}

// FindEvidenceByID retrieves evidence metadata by its identifier.
func (r *PgxEvidenceRepository) FindEvidenceByID(ctx context.Context, evidenceID string) (*domain.Evidence, error) {
	query := `SELECT evidence_id, file_name, content_type, size_bytes, storage_key, uploaded_by, uploaded_at FROM evidence WHERE evidence_id = $1;`
	var m models.Evidence
	err := r.Pool.QueryRow(ctx, query, evidenceID).Scan(
		&m.EvidenceID, &m.FileName, &m.ContentType, &m.SizeBytes, &m.StorageKey, &m.UploadedBy, &m.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan evidence", err)
	}
	evidence := mapping.ToDomainEvidence(m)
	return &evidence, nil
}
