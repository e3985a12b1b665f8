package services

import (
	"context"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
	"github.com/veloexp/claim_approval_app/internal/dto"
)

// ClaimReaderSvc defines read operations for claim data
type ClaimReaderSvc interface {
	// GetClaimByID retrieves a claim by its ID within a tenant.
	GetClaimByID(ctx context.Context, tenantID string, claimID string) (*domain.Claim, error)

	// ListClaims retrieves a page of a tenant's claims, newest first.
	ListClaims(ctx context.Context, tenantID string, limit int, nextToken string) ([]domain.Claim, string, error)

	// GetApprovalHistory retrieves the append-only history for a claim, oldest first.
	GetApprovalHistory(ctx context.Context, tenantID string, claimID string) ([]domain.ApprovalHistoryEntry, error)
}

// ClaimWriterSvc defines draft-lifecycle write operations for claim data
type ClaimWriterSvc interface {
	// CreateClaim creates a new claim in DRAFT and seeds its field provenance.
	CreateClaim(ctx context.Context, tenantID string, req dto.CreateClaimRequest, creatorID string) (*domain.Claim, error)

	// UpdateDraftClaim applies employee edits to a claim still in DRAFT.
	UpdateDraftClaim(ctx context.Context, tenantID string, claimID string, req dto.UpdateClaimRequest, updaterID string) (*domain.Claim, error)
}

// ClaimWorkflowSvc defines the state machine transitions on a claim.
// Every method serializes against other transitions on the same claim.
type ClaimWorkflowSvc interface {
	// SubmitClaim moves a DRAFT or RETURNED_TO_EMPLOYEE claim into its first
	// effective approval stage, resolving skip rules fresh for this submission.
	SubmitClaim(ctx context.Context, tenantID string, claimID string, actor dto.ClaimActor) (*domain.Claim, error)

	// ApproveClaim advances a pending claim to the next effective stage.
	ApproveClaim(ctx context.Context, tenantID string, claimID string, actor dto.ClaimActor, comment string) (*domain.Claim, error)

	// RejectClaim moves a pending claim to REJECTED (terminal).
	RejectClaim(ctx context.Context, tenantID string, claimID string, actor dto.ClaimActor, comment string) (*domain.Claim, error)

	// ReturnClaim moves a pending claim back to the employee with a reason.
	ReturnClaim(ctx context.Context, tenantID string, claimID string, actor dto.ClaimActor, reason string) (*domain.Claim, error)

	// SettleClaim moves a FINANCE_APPROVED claim to SETTLED (terminal).
	SettleClaim(ctx context.Context, tenantID string, claimID string, actor dto.ClaimActor) (*domain.Claim, error)

	// HREditClaim applies HR field edits during PENDING_HR, atomically
	// retagging provenance and appending one edited history entry.
	HREditClaim(ctx context.Context, tenantID string, claimID string, actor dto.ClaimActor, fieldChanges map[string]any) (*domain.Claim, error)
}

// ClaimSvcFacade combines all claim-related service interfaces
type ClaimSvcFacade interface {
	ClaimReaderSvc
	ClaimWriterSvc
	ClaimWorkflowSvc
}
