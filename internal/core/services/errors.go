package services

import "errors"

// Lifecycle error taxonomy. All values are recoverable and reported to the
// caller unchanged; gates return the first violated precondition.
var (
	ErrNotApproved            = errors.New("document is not approved")
	ErrAlreadyDecided         = errors.New("document decision has already been taken")
	ErrRejectionRequiresNotes = errors.New("rejection requires justification notes")
	ErrInsufficientRole       = errors.New("actor role does not permit this operation")
	ErrOverpaymentAttempt     = errors.New("payment exceeds remaining balance")
	ErrMissingEvidence        = errors.New("payment evidence is missing or invalid")
	ErrPaymentIncomplete      = errors.New("document is not fully paid")
	ErrAlreadyInvoiced        = errors.New("invoice has already been emitted")
	ErrDeletionForbidden      = errors.New("approved or paid documents cannot be deleted")
	ErrInvalidCredentials     = errors.New("invalid email or password")
)
