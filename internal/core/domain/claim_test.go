package domain_test

import (
	"testing"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestClaimStage_IsValid(t *testing.T) {
	valid := []domain.ClaimStage{
		domain.StageDraft,
		domain.StagePendingManager,
		domain.StagePendingHR,
		domain.StagePendingFinance,
		domain.StageFinanceApproved,
		domain.StageRejected,
		domain.StageReturnedToEmployee,
		domain.StageSettled,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %s to be valid", s)
	}

	assert.False(t, domain.ClaimStage("APPROVED").IsValid())
	assert.False(t, domain.ClaimStage("").IsValid())
	assert.False(t, domain.ClaimStage("draft").IsValid(), "stage values are case-sensitive")
}

func TestClaimStage_WireValues(t *testing.T) {
	// The string values are a wire contract with existing consumers.
	assert.Equal(t, "DRAFT", string(domain.StageDraft))
	assert.Equal(t, "PENDING_MANAGER", string(domain.StagePendingManager))
	assert.Equal(t, "PENDING_HR", string(domain.StagePendingHR))
	assert.Equal(t, "PENDING_FINANCE", string(domain.StagePendingFinance))
	assert.Equal(t, "FINANCE_APPROVED", string(domain.StageFinanceApproved))
	assert.Equal(t, "REJECTED", string(domain.StageRejected))
	assert.Equal(t, "RETURNED_TO_EMPLOYEE", string(domain.StageReturnedToEmployee))
	assert.Equal(t, "SETTLED", string(domain.StageSettled))
}

func TestClaimStage_TerminalAndPending(t *testing.T) {
	assert.True(t, domain.StageSettled.IsTerminal())
	assert.True(t, domain.StageRejected.IsTerminal())
	assert.False(t, domain.StageFinanceApproved.IsTerminal())
	assert.False(t, domain.StageReturnedToEmployee.IsTerminal())

	assert.True(t, domain.StagePendingManager.IsPending())
	assert.True(t, domain.StagePendingHR.IsPending())
	assert.True(t, domain.StagePendingFinance.IsPending())
	assert.False(t, domain.StageDraft.IsPending())
	assert.False(t, domain.StageFinanceApproved.IsPending())
}

func TestRole_StageMapping(t *testing.T) {
	tests := []struct {
		role  domain.Role
		stage domain.ClaimStage
		bound bool
	}{
		{domain.RoleManager, domain.StagePendingManager, true},
		{domain.RoleHR, domain.StagePendingHR, true},
		{domain.RoleFinance, domain.StagePendingFinance, true},
		{domain.RoleEmployee, "", false},
		{domain.RoleAdmin, "", false},
		{domain.RoleSystemAdmin, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			stage, ok := domain.StageForRole(tt.role)
			assert.Equal(t, tt.bound, ok)
			if tt.bound {
				assert.Equal(t, tt.stage, stage)
				role, ok := domain.RoleForStage(tt.stage)
				assert.True(t, ok)
				assert.Equal(t, tt.role, role)
				assert.True(t, tt.role.CanActOn(tt.stage))
			}
		})
	}

	assert.False(t, domain.RoleHR.CanActOn(domain.StagePendingManager))
	assert.False(t, domain.RoleManager.CanActOn(domain.StagePendingFinance))
	assert.True(t, domain.RoleAdmin.IsAggregate())
	assert.True(t, domain.RoleSystemAdmin.IsAggregate())
	assert.False(t, domain.RoleFinance.IsAggregate())
}

func TestClaim_NextStageAfter(t *testing.T) {
	claim := domain.Claim{
		EffectiveStages: []domain.ClaimStage{domain.StagePendingManager, domain.StagePendingHR},
	}

	next, ok := claim.NextStageAfter(domain.StagePendingManager)
	assert.True(t, ok)
	assert.Equal(t, domain.StagePendingHR, next)

	// Last approval stage advances straight to finance approved.
	next, ok = claim.NextStageAfter(domain.StagePendingHR)
	assert.True(t, ok)
	assert.Equal(t, domain.StageFinanceApproved, next)

	// A stage skipped at submission is not part of the sequence.
	_, ok = claim.NextStageAfter(domain.StagePendingFinance)
	assert.False(t, ok)
}

func TestSkipResolution_EffectiveSequence(t *testing.T) {
	tests := []struct {
		name string
		res  domain.SkipResolution
		want []domain.ClaimStage
	}{
		{
			name: "no skips",
			res:  domain.SkipResolution{},
			want: []domain.ClaimStage{domain.StagePendingManager, domain.StagePendingHR, domain.StagePendingFinance},
		},
		{
			name: "skip manager",
			res:  domain.SkipResolution{SkipManager: true},
			want: []domain.ClaimStage{domain.StagePendingHR, domain.StagePendingFinance},
		},
		{
			name: "skip finance",
			res:  domain.SkipResolution{SkipFinance: true},
			want: []domain.ClaimStage{domain.StagePendingManager, domain.StagePendingHR},
		},
		{
			name: "skip all",
			res:  domain.SkipResolution{SkipManager: true, SkipHR: true, SkipFinance: true},
			want: []domain.ClaimStage{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.EffectiveSequence())
		})
	}
}
