package services_test

import (
	"testing"
	"time"

	"github.com/clubsalud/findoc_backend/internal/apperrors"
	"github.com/clubsalud/findoc_backend/internal/core/domain"
	"github.com/clubsalud/findoc_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedDocument() domain.Document {
	doc := pendingDocument()
	doc.ApprovalState = domain.Approved
	return doc
}

func someEvidence() domain.EvidenceRef {
	return domain.EvidenceRef{EvidenceID: uuid.NewString()}
}

func TestPaymentLedger_RegisterSuccess(t *testing.T) {
	ledger := services.PaymentLedger{}
	doc := approvedDocument()
	actorID := uuid.NewString()
	now := time.Now().UTC()

	record, err := ledger.Register(&doc, actorID, domain.RoleReception,
		domain.NewMoney(60000, "GTQ"), domain.MethodCash, "receipt-001", someEvidence(), allEvidenceValid, now)

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, doc.DocumentID, record.DocumentID)
	assert.Equal(t, actorID, record.RegisteredBy)
	assert.Len(t, doc.Payments, 1)
	assert.Equal(t, domain.Partial, doc.PaymentState)
	assert.Equal(t, int64(40000), doc.RemainingBalance().Amount)
}

func TestPaymentLedger_ExactPaymentReachesPaid(t *testing.T) {
	ledger := services.PaymentLedger{}
	doc := approvedDocument()
	now := time.Now().UTC()

	_, err := ledger.Register(&doc, uuid.NewString(), domain.RoleFinance,
		domain.NewMoney(60000, "GTQ"), domain.MethodTransfer, "tx-1", someEvidence(), allEvidenceValid, now)
	require.NoError(t, err)
	assert.Equal(t, domain.Partial, doc.PaymentState)

	_, err = ledger.Register(&doc, uuid.NewString(), domain.RoleFinance,
		domain.NewMoney(40000, "GTQ"), domain.MethodTransfer, "tx-2", someEvidence(), allEvidenceValid, now)
	require.NoError(t, err)
	assert.Equal(t, domain.Paid, doc.PaymentState)
	assert.Equal(t, int64(0), doc.RemainingBalance().Amount)
}

func TestPaymentLedger_OverpaymentRejectedAtomically(t *testing.T) {
	ledger := services.PaymentLedger{}
	doc := approvedDocument() // principal 1000.00, nothing paid
	now := time.Now().UTC()

	_, err := ledger.Register(&doc, uuid.NewString(), domain.RoleFinance,
		domain.NewMoney(150000, "GTQ"), domain.MethodCard, "tx-over", someEvidence(), allEvidenceValid, now)

	assert.ErrorIs(t, err, services.ErrOverpaymentAttempt)
	// The ledger must stay empty; no partial registration of the fitting part.
	assert.Empty(t, doc.Payments)
	assert.Equal(t, domain.Unpaid, doc.PaymentState)
}

func TestPaymentLedger_OverpaymentAgainstRemainingBalance(t *testing.T) {
	ledger := services.PaymentLedger{}
	doc := approvedDocument()
	now := time.Now().UTC()

	_, err := ledger.Register(&doc, uuid.NewString(), domain.RoleFinance,
		domain.NewMoney(60000, "GTQ"), domain.MethodCash, "tx-1", someEvidence(), allEvidenceValid, now)
	require.NoError(t, err)

	// 500.00 against a remaining 400.00 must bounce.
	_, err = ledger.Register(&doc, uuid.NewString(), domain.RoleFinance,
		domain.NewMoney(50000, "GTQ"), domain.MethodCash, "tx-2", someEvidence(), allEvidenceValid, now)
	assert.ErrorIs(t, err, services.ErrOverpaymentAttempt)
	assert.Len(t, doc.Payments, 1)
	assert.Equal(t, domain.Partial, doc.PaymentState)
}

func TestPaymentLedger_RequiresApprovedDocument(t *testing.T) {
	ledger := services.PaymentLedger{}
	now := time.Now().UTC()

	pending := pendingDocument()
	_, err := ledger.Register(&pending, uuid.NewString(), domain.RoleFinance,
		domain.NewMoney(10000, "GTQ"), domain.MethodCash, "tx", someEvidence(), allEvidenceValid, now)
	assert.ErrorIs(t, err, services.ErrNotApproved)
	assert.Empty(t, pending.Payments)

	rejected := pendingDocument()
	rejected.ApprovalState = domain.Rejected
	_, err = ledger.Register(&rejected, uuid.NewString(), domain.RoleFinance,
		domain.NewMoney(10000, "GTQ"), domain.MethodCash, "tx", someEvidence(), allEvidenceValid, now)
	assert.ErrorIs(t, err, services.ErrNotApproved)
}

func TestPaymentLedger_RequiresEvidence(t *testing.T) {
	ledger := services.PaymentLedger{}
	now := time.Now().UTC()

	doc := approvedDocument()
	_, err := ledger.Register(&doc, uuid.NewString(), domain.RoleFinance,
		domain.NewMoney(10000, "GTQ"), domain.MethodCash, "tx", domain.EvidenceRef{}, allEvidenceValid, now)
	assert.ErrorIs(t, err, services.ErrMissingEvidence)
	assert.Empty(t, doc.Payments)

	// A reference the store does not vouch for counts the same as none.
	doc = approvedDocument()
	_, err = ledger.Register(&doc, uuid.NewString(), domain.RoleFinance,
		domain.NewMoney(10000, "GTQ"), domain.MethodCash, "tx", someEvidence(),
		func(domain.EvidenceRef) bool { return false }, now)
	assert.ErrorIs(t, err, services.ErrMissingEvidence)
	assert.Empty(t, doc.Payments)
}

func TestPaymentLedger_NotApprovedWinsOverBadEvidence(t *testing.T) {
	ledger := services.PaymentLedger{}
	now := time.Now().UTC()

	// Approval state is checked before evidence: a payment against an
	// undecided or rejected document bounces on that, whatever the
	// evidence looks like.
	for _, state := range []domain.ApprovalState{domain.PendingApproval, domain.Rejected} {
		doc := pendingDocument()
		doc.ApprovalState = state
		_, err := ledger.Register(&doc, uuid.NewString(), domain.RoleFinance,
			domain.NewMoney(10000, "GTQ"), domain.MethodCash, "tx", someEvidence(),
			func(domain.EvidenceRef) bool { return false }, now)
		assert.ErrorIs(t, err, services.ErrNotApproved, "state %s", state)
		assert.Empty(t, doc.Payments)
	}
}

func TestPaymentLedger_ValidatesInput(t *testing.T) {
	ledger := services.PaymentLedger{}
	now := time.Now().UTC()

	doc := approvedDocument()
	_, err := ledger.Register(&doc, uuid.NewString(), domain.RoleFinance,
		domain.NewMoney(10000, "USD"), domain.MethodCash, "tx", someEvidence(), allEvidenceValid, now)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "currency mismatch")

	doc = approvedDocument()
	_, err = ledger.Register(&doc, uuid.NewString(), domain.RoleFinance,
		domain.NewMoney(0, "GTQ"), domain.MethodCash, "tx", someEvidence(), allEvidenceValid, now)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "zero amount")

	doc = approvedDocument()
	_, err = ledger.Register(&doc, uuid.NewString(), domain.RoleFinance,
		domain.NewMoney(10000, "GTQ"), domain.MethodCash, "  ", someEvidence(), allEvidenceValid, now)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "blank reference")
}

func TestPaymentLedger_RoleChecks(t *testing.T) {
	ledger := services.PaymentLedger{}
	now := time.Now().UTC()

	for _, role := range []domain.Role{domain.RoleBoard, domain.RoleDoctor, domain.RoleMember} {
		doc := approvedDocument()
		_, err := ledger.Register(&doc, uuid.NewString(), role,
			domain.NewMoney(10000, "GTQ"), domain.MethodCash, "tx", someEvidence(), allEvidenceValid, now)
		assert.ErrorIs(t, err, services.ErrInsufficientRole, "role %s must not register payments", role)
	}
}
