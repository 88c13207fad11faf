package domain

import "time"

// ApprovalAction is the decision taken at the approval gate.
type ApprovalAction string

const (
	ActionApprove ApprovalAction = "APPROVE"
	ActionReject  ApprovalAction = "REJECT"
)

// ApprovalRecord captures the single approve/reject decision taken on a
// document. Notes are mandatory when the action is REJECT.
type ApprovalRecord struct {
	ActorID   string         `json:"actorID"`
	Action    ApprovalAction `json:"action"`
	Notes     string         `json:"notes,omitempty"`
	DecidedAt time.Time      `json:"decidedAt"`
}
