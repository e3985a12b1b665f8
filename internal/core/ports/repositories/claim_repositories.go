package repositories

import (
	"context"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

// ClaimReader defines read operations for claim data
type ClaimReader interface {
	// FindClaimByID retrieves a claim by its ID within a tenant.
	FindClaimByID(ctx context.Context, tenantID string, claimID string) (*domain.Claim, error)

	// ListClaims retrieves claims for a tenant, newest first, with token pagination.
	// Returns the page, plus a next token when more rows exist.
	ListClaims(ctx context.Context, tenantID string, limit int, nextToken string) ([]domain.Claim, string, error)

	// ListClaimsByStages retrieves all claims of a tenant currently in any of the given stages.
	ListClaimsByStages(ctx context.Context, tenantID string, stages []domain.ClaimStage) ([]domain.Claim, error)

	// FindHistoryByClaimID retrieves the approval history for a claim, oldest first.
	FindHistoryByClaimID(ctx context.Context, claimID string) ([]domain.ApprovalHistoryEntry, error)
}

// ClaimWriter defines write operations for claim data
type ClaimWriter interface {
	// SaveClaim persists a new claim in DRAFT together with its initial
	// field provenance, atomically.
	SaveClaim(ctx context.Context, claim domain.Claim, provenance []domain.FieldProvenance) error

	// UpdateDraftClaim persists edits to a claim that is still in DRAFT.
	UpdateDraftClaim(ctx context.Context, claim domain.Claim) error

	// RecordTransition atomically writes the claim's new stage (and effective
	// sequence / submission time when set by a submit) and appends the
	// history entry. The write is guarded by the claim's prior stage: a
	// concurrent transition that already moved the claim causes ErrNotFound
	// on the guarded update and the whole transaction rolls back.
	RecordTransition(ctx context.Context, claim domain.Claim, fromStage domain.ClaimStage, entry domain.ApprovalHistoryEntry) error

	// RecordHREdit atomically writes edited claim field values, upserts the
	// hrOverride provenance rows and appends the edited history entry.
	// Either all three land or none do.
	RecordHREdit(ctx context.Context, claim domain.Claim, provenance []domain.FieldProvenance, entry domain.ApprovalHistoryEntry) error
}

// ClaimRepositoryFacade combines all claim-related repository interfaces
type ClaimRepositoryFacade interface {
	ClaimReader
	ClaimWriter
}

// ClaimRepositoryWithTx extends ClaimRepositoryFacade with transaction capabilities
type ClaimRepositoryWithTx interface {
	ClaimRepositoryFacade
	TransactionManager
}
