package models

import "time"

// Notification represents a row in the notifications table.
type Notification struct {
	EventID      string    `db:"event_id"`
	TenantID     string    `db:"tenant_id"`
	TargetUserID string    `db:"target_user_id"`
	Type         string    `db:"type"`
	Priority     string    `db:"priority"`
	Message      string    `db:"message"`
	ActionRef    string    `db:"action_ref"`
	ClaimID      string    `db:"claim_id"`
	Stage        string    `db:"stage"`
	CreatedAt    time.Time `db:"created_at"`
}
