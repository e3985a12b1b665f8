package services

import (
	"context"
	"sort"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
	portssvc "github.com/veloexp/claim_approval_app/internal/core/ports/services"
)

// approvalQueueService derives pending counts and ordered queues from the
// live claim set. Every dashboard surface queries this one service, so the
// counting logic exists exactly once.
type approvalQueueService struct {
	claimRepo portsrepo.ClaimReader
}

// NewApprovalQueueService creates a new ApprovalQueueService.
func NewApprovalQueueService(claimRepo portsrepo.ClaimReader) portssvc.ApprovalQueueSvcFacade {
	return &approvalQueueService{claimRepo: claimRepo}
}

var _ portssvc.ApprovalQueueSvcFacade = (*approvalQueueService)(nil)

// pendingStages lists the stages that contribute to queues and counts.
var pendingStages = []domain.ClaimStage{
	domain.StagePendingManager,
	domain.StagePendingHR,
	domain.StagePendingFinance,
}

// PendingCountsForTenant recomputes the role -> count badge model.
func (s *approvalQueueService) PendingCountsForTenant(ctx context.Context, tenantID string) (domain.PendingCounts, error) {
	claims, err := s.claimRepo.ListClaimsByStages(ctx, tenantID, pendingStages)
	if err != nil {
		return domain.PendingCounts{}, err
	}
	return PendingCountsByRole(claims), nil
}

// QueueForRole returns the ordered pending queue for one role.
func (s *approvalQueueService) QueueForRole(ctx context.Context, tenantID string, role domain.Role) ([]domain.Claim, error) {
	claims, err := s.claimRepo.ListClaimsByStages(ctx, tenantID, pendingStages)
	if err != nil {
		return nil, err
	}
	return OrderedQueueForRole(claims, role), nil
}

// PendingCountsByRole counts claims per pending stage. Pure: it never
// mutates the claim set and identical inputs yield identical results.
func PendingCountsByRole(claims []domain.Claim) domain.PendingCounts {
	var counts domain.PendingCounts
	for _, c := range claims {
		switch c.Stage {
		case domain.StagePendingManager:
			counts.Manager++
		case domain.StagePendingHR:
			counts.HR++
		case domain.StagePendingFinance:
			counts.Finance++
		}
	}
	counts.Total = counts.Manager + counts.HR + counts.Finance
	return counts
}

// OrderedQueueForRole filters claims to the stage owned by the role and
// orders them by submission timestamp descending (most recent first).
// Aggregate roles (admin, system_admin) see the union of all pending stages.
func OrderedQueueForRole(claims []domain.Claim, role domain.Role) []domain.Claim {
	stage, bound := domain.StageForRole(role)
	if !bound && !role.IsAggregate() {
		return []domain.Claim{}
	}

	queue := make([]domain.Claim, 0, len(claims))
	for _, c := range claims {
		if role.IsAggregate() {
			if c.Stage.IsPending() {
				queue = append(queue, c)
			}
			continue
		}
		if c.Stage == stage {
			queue = append(queue, c)
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		ti, tj := queue[i].SubmittedAt, queue[j].SubmittedAt
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})
	return queue
}
