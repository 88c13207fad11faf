package domain

import "time"

// Evidence is the validated metadata of an uploaded payment voucher. Byte
// storage is delegated to the store behind StorageKey; the engine never
// inspects content.
type Evidence struct {
	EvidenceID  string    `json:"evidenceID"` // Primary Key (UUID)
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	StorageKey  string    `json:"-"`
	UploadedBy  string    `json:"uploadedBy"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
