package services_test

import (
	"testing"
	"time"

	"github.com/clubsalud/findoc_backend/internal/core/domain"
	"github.com/clubsalud/findoc_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingDocument() domain.Document {
	return domain.Document{
		DocumentID:      uuid.NewString(),
		Kind:            domain.KindPayable,
		Description:     "Clinic supplies",
		PrincipalAmount: domain.NewMoney(100000, "GTQ"),
		TaxAmount:       domain.NewMoney(12000, "GTQ"),
		ApprovalState:   domain.PendingApproval,
		PaymentState:    domain.Unpaid,
		InvoiceState:    domain.NotInvoiced,
	}
}

func TestApprovalGate_ApproveSuccess(t *testing.T) {
	gate := services.ApprovalGate{}
	doc := pendingDocument()
	actorID := uuid.NewString()
	now := time.Now().UTC()

	err := gate.Decide(&doc, actorID, domain.RoleFinance, domain.ActionApprove, "", now)

	require.NoError(t, err)
	assert.Equal(t, domain.Approved, doc.ApprovalState)
	require.NotNil(t, doc.ApprovalRecord)
	assert.Equal(t, actorID, doc.ApprovalRecord.ActorID)
	assert.Equal(t, domain.ActionApprove, doc.ApprovalRecord.Action)
	assert.Equal(t, now, doc.ApprovalRecord.DecidedAt)
	// Approval never touches the payment or invoice axis.
	assert.Equal(t, domain.Unpaid, doc.PaymentState)
	assert.Equal(t, domain.NotInvoiced, doc.InvoiceState)
}

func TestApprovalGate_RejectRequiresNotes(t *testing.T) {
	gate := services.ApprovalGate{}
	doc := pendingDocument()

	err := gate.Decide(&doc, uuid.NewString(), domain.RoleBoard, domain.ActionReject, "   ", time.Now().UTC())

	assert.ErrorIs(t, err, services.ErrRejectionRequiresNotes)
	assert.Equal(t, domain.PendingApproval, doc.ApprovalState)
	assert.Nil(t, doc.ApprovalRecord)
}

func TestApprovalGate_RejectWithNotes(t *testing.T) {
	gate := services.ApprovalGate{}
	doc := pendingDocument()

	err := gate.Decide(&doc, uuid.NewString(), domain.RoleBoard, domain.ActionReject, "  amount exceeds quote\n", time.Now().UTC())

	require.NoError(t, err)
	assert.Equal(t, domain.Rejected, doc.ApprovalState)
	require.NotNil(t, doc.ApprovalRecord)
	// The record keeps the same trimmed value the gate validated.
	assert.Equal(t, "amount exceeds quote", doc.ApprovalRecord.Notes)
}

func TestApprovalGate_DecisionIsTerminal(t *testing.T) {
	gate := services.ApprovalGate{}
	doc := pendingDocument()
	firstActor := uuid.NewString()
	firstDecidedAt := time.Now().UTC()

	require.NoError(t, gate.Decide(&doc, firstActor, domain.RoleFinance, domain.ActionApprove, "", firstDecidedAt))

	// A second decision of either kind must bounce without touching the record.
	err := gate.Decide(&doc, uuid.NewString(), domain.RoleBoard, domain.ActionReject, "changed my mind", time.Now().UTC())
	assert.ErrorIs(t, err, services.ErrAlreadyDecided)

	err = gate.Decide(&doc, uuid.NewString(), domain.RoleBoard, domain.ActionApprove, "", time.Now().UTC())
	assert.ErrorIs(t, err, services.ErrAlreadyDecided)

	assert.Equal(t, domain.Approved, doc.ApprovalState)
	assert.Equal(t, firstActor, doc.ApprovalRecord.ActorID)
	assert.Equal(t, firstDecidedAt, doc.ApprovalRecord.DecidedAt)
}

func TestApprovalGate_RoleChecks(t *testing.T) {
	gate := services.ApprovalGate{}

	for _, role := range []domain.Role{domain.RoleReception, domain.RoleDoctor, domain.RoleMember} {
		doc := pendingDocument()
		err := gate.Decide(&doc, uuid.NewString(), role, domain.ActionApprove, "", time.Now().UTC())
		assert.ErrorIs(t, err, services.ErrInsufficientRole, "role %s must not approve", role)
		assert.Equal(t, domain.PendingApproval, doc.ApprovalState)
	}

	for _, role := range []domain.Role{domain.RoleFinance, domain.RoleBoard, domain.RoleSuperAdmin} {
		doc := pendingDocument()
		err := gate.Decide(&doc, uuid.NewString(), role, domain.ActionApprove, "", time.Now().UTC())
		assert.NoError(t, err, "role %s must approve", role)
	}
}
