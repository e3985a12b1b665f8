package services

import (
	"context"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

// ApprovalQueueSvcFacade derives per-role pending counts and ordered queues
// from the live claim set. All derivations are pure over current stages.
type ApprovalQueueSvcFacade interface {
	// PendingCountsForTenant recomputes the role -> count badge model.
	PendingCountsForTenant(ctx context.Context, tenantID string) (domain.PendingCounts, error)

	// QueueForRole returns the claims awaiting the given role, most recent
	// submission first. Aggregate roles see the union of all pending stages.
	QueueForRole(ctx context.Context, tenantID string, role domain.Role) ([]domain.Claim, error)
}
