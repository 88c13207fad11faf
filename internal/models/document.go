package models

import "time"

// Document is the database shape of a financial document. Monetary amounts
// are stored as integer minor units next to their currency code; the approval
// decision lives in nullable columns on the same row because it is written at
// most once.
type Document struct {
	DocumentID        string     `json:"documentID"`
	Kind              string     `json:"kind"`
	Description       string     `json:"description"`
	PrincipalMinor    int64      `json:"principalMinor"`
	TaxMinor          int64      `json:"taxMinor"`
	CurrencyCode      string     `json:"currencyCode"`
	ApprovalState     string     `json:"approvalState"`
	PaymentState      string     `json:"paymentState"`
	InvoiceState      string     `json:"invoiceState"`
	InvoiceReference  *string    `json:"invoiceReference,omitempty"`
	ApprovalActorID   *string    `json:"approvalActorID,omitempty"`
	ApprovalAction    *string    `json:"approvalAction,omitempty"`
	ApprovalNotes     *string    `json:"approvalNotes,omitempty"`
	ApprovalDecidedAt *time.Time `json:"approvalDecidedAt,omitempty"`
	AuditFields
}
