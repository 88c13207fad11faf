package models

import "time"

// PaymentRecord is the database shape of one payment ledger entry. Rows are
// insert-only; there is no update path.
type PaymentRecord struct {
	PaymentID    string    `json:"paymentID"`
	DocumentID   string    `json:"documentID"`
	AmountMinor  int64     `json:"amountMinor"`
	CurrencyCode string    `json:"currencyCode"`
	Method       string    `json:"method"`
	Reference    string    `json:"reference"`
	EvidenceID   string    `json:"evidenceID"`
	RegisteredBy string    `json:"registeredBy"`
	RegisteredAt time.Time `json:"registeredAt"`
}
