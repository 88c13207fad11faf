package models

import "time"

// Evidence is the database shape of uploaded voucher metadata.
type Evidence struct {
	EvidenceID  string    `json:"evidenceID"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	StorageKey  string    `json:"-"`
	UploadedBy  string    `json:"uploadedBy"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
