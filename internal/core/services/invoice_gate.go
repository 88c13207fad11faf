package services

import (
	"time"

	"github.com/clubsalud/findoc_backend/internal/core/domain"
	"github.com/google/uuid"
)

// emitterRoles is the minimal role set allowed to emit invoices.
var emitterRoles = map[domain.Role]struct{}{
	domain.RoleFinance:    {},
	domain.RoleSuperAdmin: {},
}

// InvoiceGate enforces the golden rule: no invoice without a fully paid,
// evidenced ledger. It is the only path by which the invoice state changes.
type InvoiceGate struct{}

// Emit checks the emission preconditions in a fixed order (first failure
// wins) and on success flips the invoice state exactly once, returning the
// reference handed to the downstream numbering authority.
func (InvoiceGate) Emit(doc *domain.Document, actorID string, role domain.Role, evidenceValid func(domain.EvidenceRef) bool, now time.Time) (string, error) {
	if _, ok := emitterRoles[role]; !ok {
		return "", ErrInsufficientRole
	}
	if doc.ApprovalState != domain.Approved {
		return "", ErrNotApproved
	}
	if doc.PaymentState != domain.Paid {
		return "", ErrPaymentIncomplete
	}
	if doc.InvoiceState != domain.NotInvoiced {
		return "", ErrAlreadyInvoiced
	}
	if len(doc.Payments) == 0 {
		return "", ErrMissingEvidence
	}
	for _, p := range doc.Payments {
		if p.Evidence.IsZero() || !evidenceValid(p.Evidence) {
			return "", ErrMissingEvidence
		}
	}

	reference := uuid.NewString()
	doc.InvoiceState = domain.Invoiced
	doc.InvoiceReference = &reference
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = actorID
	return reference, nil
}
