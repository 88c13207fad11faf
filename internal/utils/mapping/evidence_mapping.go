package mapping

import (
	"github.com/clubsalud/findoc_backend/internal/core/domain"
	"github.com/clubsalud/findoc_backend/internal/models"
)

// ToModelEvidence converts domain Evidence to model Evidence
func ToModelEvidence(d domain.Evidence) models.Evidence {
	return models.Evidence{
		EvidenceID:  d.EvidenceID,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		StorageKey:  d.StorageKey,
		UploadedBy:  d.UploadedBy,
		UploadedAt:  d.UploadedAt,
	}
}

// ToDomainEvidence converts model Evidence to domain Evidence
func ToDomainEvidence(m models.Evidence) domain.Evidence {
	return domain.Evidence{
		EvidenceID:  m.EvidenceID,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		StorageKey:  m.StorageKey,
		UploadedBy:  m.UploadedBy,
		UploadedAt:  m.UploadedAt,
	}
}
