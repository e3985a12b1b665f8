package mapping

import (
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	"github.com/veloexp/claim_approval_app/internal/models"
)

// ToModelSkipRule converts a domain SkipRule to a model SkipRule
func ToModelSkipRule(d domain.SkipRule) models.SkipRule {
	return models.SkipRule{
		RuleID:         d.RuleID,
		TenantID:       d.TenantID,
		Name:           d.Name,
		IsActive:       d.IsActive,
		Priority:       d.Priority,
		MatchType:      string(d.MatchType),
		Designations:   d.Designations,
		Emails:         d.Emails,
		ProjectCodes:   d.ProjectCodes,
		MaxAmountMinor: d.MaxAmountMinor,
		CategoryCodes:  d.CategoryCodes,
		SkipManager:    d.SkipManager,
		SkipHR:         d.SkipHR,
		SkipFinance:    d.SkipFinance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSkipRule converts a model SkipRule to a domain SkipRule
func ToDomainSkipRule(m models.SkipRule) domain.SkipRule {
	return domain.SkipRule{
		RuleID:         m.RuleID,
		TenantID:       m.TenantID,
		Name:           m.Name,
		IsActive:       m.IsActive,
		Priority:       m.Priority,
		MatchType:      domain.RuleMatchType(m.MatchType),
		Designations:   m.Designations,
		Emails:         m.Emails,
		ProjectCodes:   m.ProjectCodes,
		MaxAmountMinor: m.MaxAmountMinor,
		CategoryCodes:  m.CategoryCodes,
		SkipManager:    m.SkipManager,
		SkipHR:         m.SkipHR,
		SkipFinance:    m.SkipFinance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSkipRuleSlice converts a slice of model SkipRules to domain SkipRules
func ToDomainSkipRuleSlice(ms []models.SkipRule) []domain.SkipRule {
	ds := make([]domain.SkipRule, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSkipRule(m)
	}
	return ds
}
