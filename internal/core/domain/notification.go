package domain

import "time"

// NotificationType classifies a workflow notification event.
type NotificationType string

const (
	NotifyPendingApproval NotificationType = "pending_approval"
	NotifyClaimApproved   NotificationType = "claim_approved"
	NotifyClaimRejected   NotificationType = "claim_rejected"
	NotifyClaimReturned   NotificationType = "claim_returned"
	NotifyClaimSettled    NotificationType = "claim_settled"
	NotifyClaimEdited     NotificationType = "claim_edited"
)

// NotificationPriority orders how prominently a notification is surfaced.
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

// NotificationEvent is an addressed, prioritized event produced by the
// workflow engine. Delivery is the responsibility of an external dispatcher;
// the engine never awaits it.
type NotificationEvent struct {
	EventID      string               `json:"eventID"` // Primary Key (UUID)
	TenantID     string               `json:"tenantID"`
	TargetUserID string               `json:"targetUserID"`
	Type         NotificationType     `json:"type"`
	Priority     NotificationPriority `json:"priority"`
	Message      string               `json:"message"`
	ActionRef    string               `json:"actionRef"` // Claim reference for the UI to link to
	ClaimID      string               `json:"claimID"`
	Stage        ClaimStage           `json:"stage"`
	CreatedAt    time.Time            `json:"createdAt"`
}
