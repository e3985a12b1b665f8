package domain

import "time"

// ApprovalAction identifies the kind of workflow action recorded in history.
type ApprovalAction string

const (
	ActionSubmit   ApprovalAction = "submit"
	ActionApproved ApprovalAction = "approved"
	ActionRejected ApprovalAction = "rejected"
	ActionReturned ApprovalAction = "returned"
	ActionSettled  ApprovalAction = "settled"
	ActionEdited   ApprovalAction = "edited"
)

// ApprovalHistoryEntry is an immutable, append-only record of a workflow action.
// Entries are created only by claim workflow transitions and never mutated.
type ApprovalHistoryEntry struct {
	EntryID   string         `json:"entryID"` // Primary Key (UUID)
	ClaimID   string         `json:"claimID"`
	Action    ApprovalAction `json:"action"`
	ActorID   string         `json:"actorID"`
	ActorRole Role           `json:"actorRole"`
	Comment   string         `json:"comment,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
