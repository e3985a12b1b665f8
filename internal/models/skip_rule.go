package models

// SkipRule represents a row in the skip_rules table. The match sets are
// stored as text arrays; MaxAmountMinor is nullable meaning no cap.
type SkipRule struct {
	RuleID         string   `db:"rule_id"`
	TenantID       string   `db:"tenant_id"`
	Name           string   `db:"name"`
	IsActive       bool     `db:"is_active"`
	Priority       int      `db:"priority"`
	MatchType      string   `db:"match_type"`
	Designations   []string `db:"designations"`
	Emails         []string `db:"emails"`
	ProjectCodes   []string `db:"project_codes"`
	MaxAmountMinor *int64   `db:"max_amount_minor"`
	CategoryCodes  []string `db:"category_codes"`
	SkipManager    bool     `db:"skip_manager"`
	SkipHR         bool     `db:"skip_hr"`
	SkipFinance    bool     `db:"skip_finance"`
	AuditFields
}
