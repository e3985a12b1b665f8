package mapping

import (
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	"github.com/veloexp/claim_approval_app/internal/models"
)

// ToModelClaim converts a domain Claim to a model Claim
func ToModelClaim(d domain.Claim) models.Claim {
	stages := make([]string, len(d.EffectiveStages))
	for i, s := range d.EffectiveStages {
		stages[i] = string(s)
	}
	return models.Claim{
		ClaimID:         d.ClaimID,
		ClaimNumber:     d.ClaimNumber,
		TenantID:        d.TenantID,
		EmployeeID:      d.EmployeeID,
		CurrencyCode:    d.CurrencyCode,
		AmountMinor:     d.AmountMinor,
		CategoryCode:    d.CategoryCode,
		ProjectCode:     d.ProjectCode,
		Vendor:          d.Vendor,
		Description:     d.Description,
		TransactionRef:  d.TransactionRef,
		Stage:           string(d.Stage),
		EffectiveStages: stages,
		SubmittedAt:     d.SubmittedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClaim converts a model Claim to a domain Claim
func ToDomainClaim(m models.Claim) domain.Claim {
	stages := make([]domain.ClaimStage, len(m.EffectiveStages))
	for i, s := range m.EffectiveStages {
		stages[i] = domain.ClaimStage(s)
	}
	return domain.Claim{
		ClaimID:         m.ClaimID,
		ClaimNumber:     m.ClaimNumber,
		TenantID:        m.TenantID,
		EmployeeID:      m.EmployeeID,
		CurrencyCode:    m.CurrencyCode,
		AmountMinor:     m.AmountMinor,
		CategoryCode:    m.CategoryCode,
		ProjectCode:     m.ProjectCode,
		Vendor:          m.Vendor,
		Description:     m.Description,
		TransactionRef:  m.TransactionRef,
		Stage:           domain.ClaimStage(m.Stage),
		EffectiveStages: stages,
		SubmittedAt:     m.SubmittedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainClaimSlice converts a slice of model Claims to a slice of domain Claims
func ToDomainClaimSlice(ms []models.Claim) []domain.Claim {
	ds := make([]domain.Claim, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainClaim(m)
	}
	return ds
}

// ToModelApprovalHistory converts a domain ApprovalHistoryEntry to a model ApprovalHistory
func ToModelApprovalHistory(d domain.ApprovalHistoryEntry) models.ApprovalHistory {
	return models.ApprovalHistory{
		EntryID:   d.EntryID,
		ClaimID:   d.ClaimID,
		Action:    string(d.Action),
		ActorID:   d.ActorID,
		ActorRole: string(d.ActorRole),
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainApprovalHistory converts a model ApprovalHistory to a domain ApprovalHistoryEntry
func ToDomainApprovalHistory(m models.ApprovalHistory) domain.ApprovalHistoryEntry {
	return domain.ApprovalHistoryEntry{
		EntryID:   m.EntryID,
		ClaimID:   m.ClaimID,
		Action:    domain.ApprovalAction(m.Action),
		ActorID:   m.ActorID,
		ActorRole: domain.Role(m.ActorRole),
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainApprovalHistorySlice converts model history rows to domain entries
func ToDomainApprovalHistorySlice(ms []models.ApprovalHistory) []domain.ApprovalHistoryEntry {
	ds := make([]domain.ApprovalHistoryEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApprovalHistory(m)
	}
	return ds
}
