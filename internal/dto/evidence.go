package dto

import (
	"time"

	"github.com/clubsalud/findoc_backend/internal/core/domain"
)

// RegisterEvidenceRequest carries the metadata of an uploaded voucher. The
// handler fills it from the multipart header; bytes never reach the engine.
type RegisterEvidenceRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	SizeBytes   int64  `json:"sizeBytes" binding:"required,gt=0"`
}

// EvidenceResponse is the API shape of stored evidence metadata.
type EvidenceResponse struct {
	EvidenceID  string    `json:"evidenceID"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedBy  string    `json:"uploadedBy"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// ToEvidenceResponse converts domain Evidence to its API shape.
func ToEvidenceResponse(e *domain.Evidence) EvidenceResponse {
	return EvidenceResponse{
		EvidenceID:  e.EvidenceID,
		FileName:    e.FileName,
		ContentType: e.ContentType,
		SizeBytes:   e.SizeBytes,
		UploadedBy:  e.UploadedBy,
		UploadedAt:  e.UploadedAt,
	}
}
