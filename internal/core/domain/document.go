package domain

// DocumentKind distinguishes the four obligation types that share the same
// lifecycle semantics.
type DocumentKind string

const (
	KindPayable          DocumentKind = "PAYABLE"
	KindSalesInvoice     DocumentKind = "SALES_INVOICE"
	KindApprovalQuote    DocumentKind = "APPROVAL_QUOTE"
	KindMembershipCharge DocumentKind = "MEMBERSHIP_CHARGE"
)

// ApprovalState indicates where a document stands in the approval gate.
type ApprovalState string

const (
	PendingApproval ApprovalState = "PENDING_APPROVAL"
	Approved        ApprovalState = "APPROVED"
	Rejected        ApprovalState = "REJECTED"
)

// PaymentState is derived from the payment ledger sum; it is never stored
// authoritatively and never incremented.
type PaymentState string

const (
	Unpaid  PaymentState = "UNPAID"
	Partial PaymentState = "PARTIAL"
	Paid    PaymentState = "PAID"
)

// InvoiceState indicates whether the regulated invoice has been emitted.
type InvoiceState string

const (
	NotInvoiced InvoiceState = "NOT_INVOICED"
	Invoiced    InvoiceState = "INVOICED"
)

// Document is a monetary obligation (payable, sales invoice, quote or
// membership charge) moving through approval, evidence-backed collection and
// invoice emission.
type Document struct {
	DocumentID       string          `json:"documentID"` // Primary Key (UUID)
	Kind             DocumentKind    `json:"kind"`
	Description      string          `json:"description"`
	PrincipalAmount  Money           `json:"principalAmount"` // Immutable after creation
	TaxAmount        Money           `json:"taxAmount"`       // Derived once at creation, never re-derived
	ApprovalState    ApprovalState   `json:"approvalState"`
	PaymentState     PaymentState    `json:"paymentState"`
	InvoiceState     InvoiceState    `json:"invoiceState"`
	InvoiceReference *string         `json:"invoiceReference,omitempty"` // Set once by the invoice gate
	Payments         []PaymentRecord `json:"payments,omitempty"`         // Append-only ledger
	ApprovalRecord   *ApprovalRecord `json:"approvalRecord,omitempty"`   // Written exactly once
	AuditFields
}

// PaidTotal sums the payment ledger. It is recomputed from the full ledger on
// every call; the repository guarantees every ledger entry shares the
// principal's currency.
func (d *Document) PaidTotal() Money {
	total := int64(0)
	for _, p := range d.Payments {
		total += p.Amount.Amount
	}
	return Money{Amount: total, Currency: d.PrincipalAmount.Currency}
}

// RemainingBalance is the hard ceiling for any further payment.
func (d *Document) RemainingBalance() Money {
	paid := d.PaidTotal()
	return Money{Amount: d.PrincipalAmount.Amount - paid.Amount, Currency: d.PrincipalAmount.Currency}
}

// DerivePaymentState maps the ledger sum onto the payment state.
// Unpaid when sum = 0, Paid when sum = principal, Partial in between.
func DerivePaymentState(paid Money, principal Money) PaymentState {
	switch {
	case paid.Amount <= 0:
		return Unpaid
	case paid.Amount >= principal.Amount:
		return Paid
	default:
		return Partial
	}
}
