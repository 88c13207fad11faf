package services

import (
	"strings"
	"time"

	"github.com/clubsalud/findoc_backend/internal/core/domain"
)

// approverRoles is the minimal role set allowed to decide a document.
// Reception may create but never approve its own submissions.
var approverRoles = map[domain.Role]struct{}{
	domain.RoleFinance:    {},
	domain.RoleBoard:      {},
	domain.RoleSuperAdmin: {},
}

// ApprovalGate validates and applies the single approve/reject transition of
// a document. The decision is terminal: once taken this gate never moves the
// document again.
type ApprovalGate struct{}

// Decide applies the decision to doc in place. It returns the first violated
// precondition and leaves doc untouched on failure.
func (ApprovalGate) Decide(doc *domain.Document, actorID string, role domain.Role, action domain.ApprovalAction, notes string, now time.Time) error {
	if _, ok := approverRoles[role]; !ok {
		return ErrInsufficientRole
	}
	if doc.ApprovalState != domain.PendingApproval {
		return ErrAlreadyDecided
	}
	notes = strings.TrimSpace(notes)
	if action == domain.ActionReject && notes == "" {
		return ErrRejectionRequiresNotes
	}

	record := domain.ApprovalRecord{
		ActorID:   actorID,
		Action:    action,
		Notes:     notes,
		DecidedAt: now,
	}

	switch action {
	case domain.ActionApprove:
		doc.ApprovalState = domain.Approved
	case domain.ActionReject:
		// Payment fields stay untouched: a pending document has an empty
		// ledger by invariant, and a rejected one never accepts payments.
		doc.ApprovalState = domain.Rejected
	}
	doc.ApprovalRecord = &record
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = actorID
	return nil
}
