package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portssvc "github.com/veloexp/claim_approval_app/internal/core/ports/services"
	"github.com/veloexp/claim_approval_app/internal/core/services"
)

func pendingClaim(stage domain.ClaimStage, submittedAt time.Time) domain.Claim {
	return domain.Claim{
		ClaimID:     uuid.NewString(),
		TenantID:    "t1",
		Stage:       stage,
		SubmittedAt: &submittedAt,
	}
}

func TestPendingCountsByRole(t *testing.T) {
	now := time.Now()
	claims := []domain.Claim{
		pendingClaim(domain.StagePendingManager, now),
		pendingClaim(domain.StagePendingManager, now),
		pendingClaim(domain.StagePendingHR, now),
		pendingClaim(domain.StagePendingFinance, now),
		pendingClaim(domain.StagePendingFinance, now),
		pendingClaim(domain.StagePendingFinance, now),
	}

	snapshot := make([]domain.Claim, len(claims))
	copy(snapshot, claims)

	counts := services.PendingCountsByRole(claims)

	assert.Equal(t, 2, counts.Manager)
	assert.Equal(t, 1, counts.HR)
	assert.Equal(t, 3, counts.Finance)
	assert.Equal(t, 6, counts.Total)

	// A second pass over the unmodified set yields the same counts and
	// leaves the input untouched.
	assert.Equal(t, counts, services.PendingCountsByRole(claims))
	assert.Equal(t, snapshot, claims)
}

func TestPendingCountsByRole_Empty(t *testing.T) {
	counts := services.PendingCountsByRole(nil)
	assert.Equal(t, domain.PendingCounts{}, counts)
}

func TestOrderedQueueForRole_FiltersAndOrders(t *testing.T) {
	now := time.Now()
	oldest := pendingClaim(domain.StagePendingHR, now.Add(-2*time.Hour))
	middle := pendingClaim(domain.StagePendingHR, now.Add(-time.Hour))
	newest := pendingClaim(domain.StagePendingHR, now)
	other := pendingClaim(domain.StagePendingManager, now)

	queue := services.OrderedQueueForRole([]domain.Claim{oldest, other, newest, middle}, domain.RoleHR)

	require.Len(t, queue, 3)
	assert.Equal(t, newest.ClaimID, queue[0].ClaimID)
	assert.Equal(t, middle.ClaimID, queue[1].ClaimID)
	assert.Equal(t, oldest.ClaimID, queue[2].ClaimID)
}

func TestOrderedQueueForRole_AggregateSeesUnion(t *testing.T) {
	now := time.Now()
	claims := []domain.Claim{
		pendingClaim(domain.StagePendingManager, now),
		pendingClaim(domain.StagePendingHR, now.Add(time.Minute)),
		pendingClaim(domain.StagePendingFinance, now.Add(2*time.Minute)),
	}

	queue := services.OrderedQueueForRole(claims, domain.RoleAdmin)

	require.Len(t, queue, 3)
	assert.Equal(t, domain.StagePendingFinance, queue[0].Stage)
}

func TestOrderedQueueForRole_UnboundRoleGetsEmptyQueue(t *testing.T) {
	claims := []domain.Claim{pendingClaim(domain.StagePendingManager, time.Now())}

	queue := services.OrderedQueueForRole(claims, domain.RoleEmployee)

	assert.Empty(t, queue)
}

// --- Test Suite Setup ---
type ApprovalQueueServiceTestSuite struct {
	suite.Suite
	mockClaimRepo *MockClaimRepository
	service       portssvc.ApprovalQueueSvcFacade
	tenantID      string
}

func (suite *ApprovalQueueServiceTestSuite) SetupTest() {
	suite.mockClaimRepo = new(MockClaimRepository)
	suite.service = services.NewApprovalQueueService(suite.mockClaimRepo)
	suite.tenantID = uuid.NewString()
}

func (suite *ApprovalQueueServiceTestSuite) TestPendingCountsForTenant() {
	ctx := context.Background()
	now := time.Now()
	claims := []domain.Claim{
		pendingClaim(domain.StagePendingManager, now),
		pendingClaim(domain.StagePendingFinance, now),
	}
	stages := []domain.ClaimStage{domain.StagePendingManager, domain.StagePendingHR, domain.StagePendingFinance}
	suite.mockClaimRepo.On("ListClaimsByStages", ctx, suite.tenantID, stages).Return(claims, nil).Once()

	counts, err := suite.service.PendingCountsForTenant(ctx, suite.tenantID)

	suite.Require().NoError(err)
	suite.Equal(1, counts.Manager)
	suite.Equal(0, counts.HR)
	suite.Equal(1, counts.Finance)
	suite.Equal(2, counts.Total)
	suite.mockClaimRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalQueueServiceTestSuite) TestQueueForRole() {
	ctx := context.Background()
	now := time.Now()
	claims := []domain.Claim{
		pendingClaim(domain.StagePendingManager, now.Add(-time.Hour)),
		pendingClaim(domain.StagePendingManager, now),
		pendingClaim(domain.StagePendingHR, now),
	}
	stages := []domain.ClaimStage{domain.StagePendingManager, domain.StagePendingHR, domain.StagePendingFinance}
	suite.mockClaimRepo.On("ListClaimsByStages", ctx, suite.tenantID, stages).Return(claims, nil).Once()

	queue, err := suite.service.QueueForRole(ctx, suite.tenantID, domain.RoleManager)

	suite.Require().NoError(err)
	suite.Require().Len(queue, 2)
	suite.Equal(claims[1].ClaimID, queue[0].ClaimID)
	suite.Equal(claims[0].ClaimID, queue[1].ClaimID)
}

func TestApprovalQueueServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalQueueServiceTestSuite))
}
