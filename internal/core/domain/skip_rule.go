package domain

// RuleMatchType selects which claim/actor attribute a skip rule matches on.
// Exactly one match type applies per rule.
type RuleMatchType string

const (
	MatchDesignation RuleMatchType = "designation"
	MatchEmail       RuleMatchType = "email"
	MatchProject     RuleMatchType = "project"
)

// IsValid reports whether the match type is one of the defined enum values.
func (m RuleMatchType) IsValid() bool {
	switch m {
	case MatchDesignation, MatchEmail, MatchProject:
		return true
	}
	return false
}

// SkipRule is a tenant-scoped policy that removes approval stages from a
// claim's required sequence. Rules are managed by tenant administrators and
// read-only from the engine's perspective.
type SkipRule struct {
	RuleID   string `json:"ruleID"` // Primary Key (UUID)
	TenantID string `json:"tenantID"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
	// Priority orders evaluation; lower evaluates first. Ties are broken by
	// creation time (stable, insertion order).
	Priority  int           `json:"priority"`
	MatchType RuleMatchType `json:"matchType"`
	// Exactly one of the following sets is non-empty, per MatchType.
	Designations []string `json:"designations,omitempty"`
	Emails       []string `json:"emails,omitempty"` // Stored lower-cased
	ProjectCodes []string `json:"projectCodes,omitempty"`
	// MaxAmountMinor restricts the rule to claims with amount <= threshold,
	// in minor units. Nil means unconstrained.
	MaxAmountMinor *int64 `json:"maxAmountMinor,omitempty"`
	// CategoryCodes restricts the rule to the listed categories. Empty means
	// unconstrained.
	CategoryCodes []string `json:"categoryCodes,omitempty"`
	SkipManager   bool     `json:"skipManager"`
	SkipHR        bool     `json:"skipHR"`
	SkipFinance   bool     `json:"skipFinance"`
	AuditFields
}

// MatchSet returns the match list selected by the rule's match type.
func (r *SkipRule) MatchSet() []string {
	switch r.MatchType {
	case MatchDesignation:
		return r.Designations
	case MatchEmail:
		return r.Emails
	case MatchProject:
		return r.ProjectCodes
	}
	return nil
}

// SkipsAnyStage reports whether at least one skip flag is set.
func (r *SkipRule) SkipsAnyStage() bool {
	return r.SkipManager || r.SkipHR || r.SkipFinance
}

// SkipResolution is the outcome of evaluating a tenant's rule set against a
// single claim submission.
type SkipResolution struct {
	SkipManager bool `json:"skipManager"`
	SkipHR      bool `json:"skipHR"`
	SkipFinance bool `json:"skipFinance"`
	// MatchedRuleID identifies the single rule whose flags took effect, empty
	// when no rule matched.
	MatchedRuleID string `json:"matchedRuleID,omitempty"`
}

// EffectiveSequence prunes the full approval sequence according to the
// resolution, preserving order.
func (res SkipResolution) EffectiveSequence() []ClaimStage {
	seq := make([]ClaimStage, 0, len(FullApprovalSequence))
	for _, stage := range FullApprovalSequence {
		switch {
		case stage == StagePendingManager && res.SkipManager:
		case stage == StagePendingHR && res.SkipHR:
		case stage == StagePendingFinance && res.SkipFinance:
		default:
			seq = append(seq, stage)
		}
	}
	return seq
}
