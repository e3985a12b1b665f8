package domain

import "time"

// ClaimStage indicates a claim's position in the approval lifecycle.
// The string values are part of the wire contract and must not change.
type ClaimStage string

const (
	StageDraft              ClaimStage = "DRAFT"
	StagePendingManager     ClaimStage = "PENDING_MANAGER"
	StagePendingHR          ClaimStage = "PENDING_HR"
	StagePendingFinance     ClaimStage = "PENDING_FINANCE"
	StageFinanceApproved    ClaimStage = "FINANCE_APPROVED"
	StageRejected           ClaimStage = "REJECTED"
	StageReturnedToEmployee ClaimStage = "RETURNED_TO_EMPLOYEE"
	StageSettled            ClaimStage = "SETTLED"
)

// FullApprovalSequence is the ordered set of approval stages a submission
// passes through before finance approval, prior to any skip-rule pruning.
var FullApprovalSequence = []ClaimStage{
	StagePendingManager,
	StagePendingHR,
	StagePendingFinance,
}

// allStages is the closed set of legal stage values.
var allStages = map[ClaimStage]struct{}{
	StageDraft:              {},
	StagePendingManager:     {},
	StagePendingHR:          {},
	StagePendingFinance:     {},
	StageFinanceApproved:    {},
	StageRejected:           {},
	StageReturnedToEmployee: {},
	StageSettled:            {},
}

// IsValid reports whether the stage is one of the defined enum values.
func (s ClaimStage) IsValid() bool {
	_, ok := allStages[s]
	return ok
}

// IsTerminal reports whether no further transitions are permitted from the stage.
func (s ClaimStage) IsTerminal() bool {
	return s == StageSettled || s == StageRejected
}

// IsPending reports whether the stage is awaiting action from an approver role.
func (s ClaimStage) IsPending() bool {
	return s == StagePendingManager || s == StagePendingHR || s == StagePendingFinance
}

// Claim represents a single expense claim and its position in the workflow.
type Claim struct {
	ClaimID        string     `json:"claimID"`     // Primary Key (UUID)
	ClaimNumber    string     `json:"claimNumber"` // Human readable, unique per tenant
	TenantID       string     `json:"tenantID"`
	EmployeeID     string     `json:"employeeID"` // Submitting employee
	CurrencyCode   string     `json:"currencyCode"`
	AmountMinor    int64      `json:"amountMinor"` // Minor units (e.g. cents); always >= 0
	CategoryCode   string     `json:"categoryCode"`
	ProjectCode    string     `json:"projectCode,omitempty"` // Optional
	Vendor         string     `json:"vendor"`
	Description    string     `json:"description"`
	TransactionRef string     `json:"transactionRef"`
	Stage          ClaimStage `json:"stage"`
	// EffectiveStages is the approval sequence resolved at the most recent
	// submission, after skip-rule pruning. Approvals advance along this
	// sequence; it is not recomputed until the next submission.
	EffectiveStages []ClaimStage `json:"effectiveStages,omitempty"`
	SubmittedAt     *time.Time   `json:"submittedAt,omitempty"`
	AuditFields
}

// NextStageAfter returns the stage following current in the claim's effective
// sequence, or FINANCE_APPROVED when current is the last approval stage.
// The second return is false when current is not part of the sequence.
func (c *Claim) NextStageAfter(current ClaimStage) (ClaimStage, bool) {
	for i, s := range c.EffectiveStages {
		if s != current {
			continue
		}
		if i+1 < len(c.EffectiveStages) {
			return c.EffectiveStages[i+1], true
		}
		return StageFinanceApproved, true
	}
	return "", false
}
