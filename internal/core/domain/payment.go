package domain

import "time"

// PaymentMethod enumerates the collection channels accepted at reception.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodCard     PaymentMethod = "CARD"
	MethodTransfer PaymentMethod = "TRANSFER"
	MethodCheque   PaymentMethod = "CHEQUE"
)

// EvidenceRef is an opaque handle to a stored proof-of-payment artifact.
// The engine only ever reasons about its validity, never its content.
type EvidenceRef struct {
	EvidenceID string `json:"evidenceID"`
}

// IsZero reports whether the reference points at nothing.
func (r EvidenceRef) IsZero() bool {
	return r.EvidenceID == ""
}

// PaymentRecord is one entry in a document's append-only payment ledger.
// Records are immutable once appended; corrections are compensating entries,
// never in-place edits.
type PaymentRecord struct {
	PaymentID    string        `json:"paymentID"`  // Primary Key (UUID)
	DocumentID   string        `json:"documentID"` // FK -> Document.documentID
	Amount       Money         `json:"amount"`     // Strictly positive
	Method       PaymentMethod `json:"method"`
	Reference    string        `json:"reference"` // Bank slip / receipt number
	Evidence     EvidenceRef   `json:"evidence"`  // Mandatory
	RegisteredBy string        `json:"registeredBy"`
	RegisteredAt time.Time     `json:"registeredAt"`
}
