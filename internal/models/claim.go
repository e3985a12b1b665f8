package models

import "time"

// Claim represents a row in the claims table. EffectiveStages holds the
// approval stages fixed at the most recent submission as a text array.
type Claim struct {
	ClaimID         string     `db:"claim_id"`
	ClaimNumber     string     `db:"claim_number"`
	TenantID        string     `db:"tenant_id"`
	EmployeeID      string     `db:"employee_id"`
	CurrencyCode    string     `db:"currency_code"`
	AmountMinor     int64      `db:"amount_minor"`
	CategoryCode    string     `db:"category_code"`
	ProjectCode     string     `db:"project_code"`
	Vendor          string     `db:"vendor"`
	Description     string     `db:"description"`
	TransactionRef  string     `db:"transaction_ref"`
	Stage           string     `db:"stage"`
	EffectiveStages []string   `db:"effective_stages"`
	SubmittedAt     *time.Time `db:"submitted_at"` // Nullable, set on first submission
	AuditFields
}

// ApprovalHistory represents a row in the append-only approval_history table.
type ApprovalHistory struct {
	EntryID   string    `db:"entry_id"`
	ClaimID   string    `db:"claim_id"`
	Action    string    `db:"action"`
	ActorID   string    `db:"actor_id"`
	ActorRole string    `db:"actor_role"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}
