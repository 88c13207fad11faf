package dto

import (
	"time"

	"github.com/clubsalud/findoc_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDocumentRequest is the payload for creating a financial document.
type CreateDocumentRequest struct {
	Kind         string           `json:"kind" binding:"required,documentkind"`
	Description  string           `json:"description" binding:"required"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	TaxRate      *decimal.Decimal `json:"taxRate,omitempty"` // e.g. 0.12 for IVA; tax is derived once at creation
	CurrencyCode string           `json:"currencyCode" binding:"omitempty,len=3"`
}

// DecideDocumentRequest carries an approve/reject decision.
type DecideDocumentRequest struct {
	Action string `json:"action" binding:"required,approvalaction"`
	Notes  string `json:"notes"`
}

// RegisterPaymentRequest carries one evidence-backed payment registration.
type RegisterPaymentRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Method     string          `json:"method" binding:"required,paymentmethod"`
	Reference  string          `json:"reference" binding:"required"`
	EvidenceID string          `json:"evidenceID" binding:"required"`
}

// ListDocumentsParams holds filter and pagination parameters for listing.
type ListDocumentsParams struct {
	Kind          string  `form:"kind" binding:"omitempty,documentkind"`
	ApprovalState string  `form:"approvalState" binding:"omitempty,oneof=PENDING_APPROVAL APPROVED REJECTED"`
	Limit         int     `form:"limit"`
	NextToken     *string `form:"nextToken"`
}

// PaymentResponse is the API shape of one ledger entry.
type PaymentResponse struct {
	PaymentID    string          `json:"paymentID"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"`
	Reference    string          `json:"reference"`
	EvidenceID   string          `json:"evidenceID"`
	RegisteredBy string          `json:"registeredBy"`
	RegisteredAt time.Time       `json:"registeredAt"`
}

// ApprovalRecordResponse is the API shape of the decision record.
type ApprovalRecordResponse struct {
	ActorID   string    `json:"actorID"`
	Action    string    `json:"action"`
	Notes     string    `json:"notes,omitempty"`
	DecidedAt time.Time `json:"decidedAt"`
}

// DocumentResponse is the API shape of a document, including the balances
// derived from the ledger.
type DocumentResponse struct {
	DocumentID       string                  `json:"documentID"`
	Kind             string                  `json:"kind"`
	Description      string                  `json:"description"`
	PrincipalAmount  decimal.Decimal         `json:"principalAmount"`
	TaxAmount        decimal.Decimal         `json:"taxAmount"`
	CurrencyCode     string                  `json:"currencyCode"`
	ApprovalState    string                  `json:"approvalState"`
	PaymentState     string                  `json:"paymentState"`
	InvoiceState     string                  `json:"invoiceState"`
	InvoiceReference *string                 `json:"invoiceReference,omitempty"`
	PaidTotal        decimal.Decimal         `json:"paidTotal"`
	RemainingBalance decimal.Decimal         `json:"remainingBalance"`
	Payments         []PaymentResponse       `json:"payments,omitempty"`
	ApprovalRecord   *ApprovalRecordResponse `json:"approvalRecord,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
	CreatedBy        string                  `json:"createdBy"`
}

// ListDocumentsResponse wraps a page of documents with the next page token.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// EmitInvoiceResponse returns the reference handed to the downstream
// invoice-numbering authority.
type EmitInvoiceResponse struct {
	DocumentID       string `json:"documentID"`
	InvoiceReference string `json:"invoiceReference"`
}

// ToPaymentResponse converts a domain PaymentRecord to its API shape.
func ToPaymentResponse(p domain.PaymentRecord) PaymentResponse {
	return PaymentResponse{
		PaymentID:    p.PaymentID,
		Amount:       p.Amount.Decimal(),
		Method:       string(p.Method),
		Reference:    p.Reference,
		EvidenceID:   p.Evidence.EvidenceID,
		RegisteredBy: p.RegisteredBy,
		RegisteredAt: p.RegisteredAt,
	}
}

// ToDocumentResponse converts a domain Document to its API shape.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:       d.DocumentID,
		Kind:             string(d.Kind),
		Description:      d.Description,
		PrincipalAmount:  d.PrincipalAmount.Decimal(),
		TaxAmount:        d.TaxAmount.Decimal(),
		CurrencyCode:     d.PrincipalAmount.Currency,
		ApprovalState:    string(d.ApprovalState),
		PaymentState:     string(d.PaymentState),
		InvoiceState:     string(d.InvoiceState),
		InvoiceReference: d.InvoiceReference,
		PaidTotal:        d.PaidTotal().Decimal(),
		RemainingBalance: d.RemainingBalance().Decimal(),
		CreatedAt:        d.CreatedAt,
		CreatedBy:        d.CreatedBy,
	}
	if len(d.Payments) > 0 {
		resp.Payments = make([]PaymentResponse, len(d.Payments))
		for i, p := range d.Payments {
			resp.Payments[i] = ToPaymentResponse(p)
		}
	}
	if d.ApprovalRecord != nil {
		resp.ApprovalRecord = &ApprovalRecordResponse{
			ActorID:   d.ApprovalRecord.ActorID,
			Action:    string(d.ApprovalRecord.Action),
			Notes:     d.ApprovalRecord.Notes,
			DecidedAt: d.ApprovalRecord.DecidedAt,
		}
	}
	return resp
}

// ToDocumentResponses converts a slice of domain Documents.
func ToDocumentResponses(docs []domain.Document) []DocumentResponse {
	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = ToDocumentResponse(&docs[i])
	}
	return out
}
