package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/clubsalud/findoc_backend/internal/apperrors"
	"github.com/clubsalud/findoc_backend/internal/core/domain"
	"github.com/google/uuid"
)

// collectorRoles is the minimal role set allowed to register payments.
var collectorRoles = map[domain.Role]struct{}{
	domain.RoleReception:  {},
	domain.RoleFinance:    {},
	domain.RoleSuperAdmin: {},
}

// PaymentLedger validates and appends payment registrations. The remaining
// balance is recomputed from the full ledger on every call; it is never
// cached on the document.
type PaymentLedger struct{}

// Register appends one payment to doc's ledger and re-derives the payment
// state from the new sum. On failure doc is left untouched and the first
// violated precondition is returned.
func (PaymentLedger) Register(doc *domain.Document, actorID string, role domain.Role, amount domain.Money, method domain.PaymentMethod, reference string, evidence domain.EvidenceRef, evidenceValid func(domain.EvidenceRef) bool, now time.Time) (*domain.PaymentRecord, error) {
	if _, ok := collectorRoles[role]; !ok {
		return nil, ErrInsufficientRole
	}
	if doc.ApprovalState != domain.Approved {
		return nil, ErrNotApproved
	}
	if !amount.SameCurrency(doc.PrincipalAmount) {
		return nil, fmt.Errorf("%w: payment currency %s does not match document currency %s",
			apperrors.ErrValidation, amount.Currency, doc.PrincipalAmount.Currency)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if method == "" {
		return nil, fmt.Errorf("%w: payment method is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(reference) == "" {
		return nil, fmt.Errorf("%w: payment reference is required", apperrors.ErrValidation)
	}
	if evidence.IsZero() || !evidenceValid(evidence) {
		return nil, ErrMissingEvidence
	}

	remaining := doc.RemainingBalance()
	if amount.Amount > remaining.Amount {
		return nil, fmt.Errorf("%w: %s against remaining balance %s", ErrOverpaymentAttempt, amount, remaining)
	}

	record := domain.PaymentRecord{
		PaymentID:    uuid.NewString(),
		DocumentID:   doc.DocumentID,
		Amount:       amount,
		Method:       method,
		Reference:    reference,
		Evidence:     evidence,
		RegisteredBy: actorID,
		RegisteredAt: now,
	}

	doc.Payments = append(doc.Payments, record)
	// Always a pure function of the fresh ledger sum; no special-cased
	// "final payment" branch.
	doc.PaymentState = domain.DerivePaymentState(doc.PaidTotal(), doc.PrincipalAmount)
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = actorID
	return &record, nil
}
