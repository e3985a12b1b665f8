package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/veloexp/claim_approval_app/internal/apperrors"
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
	portssvc "github.com/veloexp/claim_approval_app/internal/core/ports/services"
	"github.com/veloexp/claim_approval_app/internal/core/services"
	"github.com/veloexp/claim_approval_app/internal/dto"
)

// --- Mock SkipRuleRepository ---
type MockSkipRuleRepository struct {
	mock.Mock
}

var _ portsrepo.SkipRuleRepositoryFacade = (*MockSkipRuleRepository)(nil)

func (m *MockSkipRuleRepository) FindRuleByID(ctx context.Context, tenantID string, ruleID string) (*domain.SkipRule, error) {
	args := m.Called(ctx, tenantID, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SkipRule), args.Error(1)
}

func (m *MockSkipRuleRepository) ListRulesByTenant(ctx context.Context, tenantID string) ([]domain.SkipRule, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SkipRule), args.Error(1)
}

func (m *MockSkipRuleRepository) ListActiveRulesByTenant(ctx context.Context, tenantID string) ([]domain.SkipRule, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SkipRule), args.Error(1)
}

func (m *MockSkipRuleRepository) SaveRule(ctx context.Context, rule domain.SkipRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockSkipRuleRepository) UpdateRule(ctx context.Context, rule domain.SkipRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockSkipRuleRepository) DeactivateRule(ctx context.Context, tenantID string, ruleID string, updaterID string) error {
	args := m.Called(ctx, tenantID, ruleID, updaterID)
	return args.Error(0)
}

// --- Pure resolution tests ---

func designationRule(id string, priority int, createdAt time.Time, designations []string) domain.SkipRule {
	return domain.SkipRule{
		RuleID:       id,
		TenantID:     "t1",
		Name:         "rule " + id,
		IsActive:     true,
		Priority:     priority,
		MatchType:    domain.MatchDesignation,
		Designations: designations,
		SkipManager:  true,
		AuditFields:  domain.AuditFields{CreatedAt: createdAt},
	}
}

func TestResolveSkipRules_NoMatch(t *testing.T) {
	claim := domain.Claim{AmountMinor: 5000}
	rules := []domain.SkipRule{designationRule("r1", 10, time.Now(), []string{"L7"})}

	res := services.ResolveSkipRules(claim, "L4", "a@b.com", rules)

	assert.Empty(t, res.MatchedRuleID)
	assert.False(t, res.SkipManager)
	assert.Equal(t, []domain.ClaimStage{domain.StagePendingManager, domain.StagePendingHR, domain.StagePendingFinance}, res.EffectiveSequence())
}

func TestResolveSkipRules_FirstMatchWinsByPriority(t *testing.T) {
	now := time.Now()
	low := designationRule("low", 1, now, []string{"L7"})
	low.SkipManager = true
	low.SkipHR = true
	high := designationRule("high", 5, now, []string{"L7"})
	high.SkipManager = false
	high.SkipFinance = true

	// Order in the slice must not matter.
	res := services.ResolveSkipRules(domain.Claim{}, "L7", "", []domain.SkipRule{high, low})

	assert.Equal(t, "low", res.MatchedRuleID)
	assert.True(t, res.SkipManager)
	assert.True(t, res.SkipHR)
	assert.False(t, res.SkipFinance)
	assert.Equal(t, []domain.ClaimStage{domain.StagePendingFinance}, res.EffectiveSequence())
}

func TestResolveSkipRules_TieBrokenByCreationTime(t *testing.T) {
	older := designationRule("older", 3, time.Now().Add(-time.Hour), []string{"L7"})
	newer := designationRule("newer", 3, time.Now(), []string{"L7"})

	res := services.ResolveSkipRules(domain.Claim{}, "L7", "", []domain.SkipRule{newer, older})

	assert.Equal(t, "older", res.MatchedRuleID)
}

func TestResolveSkipRules_AmountCap(t *testing.T) {
	threshold := int64(10000)
	rule := designationRule("capped", 1, time.Now(), []string{"L7"})
	rule.MaxAmountMinor = &threshold

	over := services.ResolveSkipRules(domain.Claim{AmountMinor: 10001}, "L7", "", []domain.SkipRule{rule})
	under := services.ResolveSkipRules(domain.Claim{AmountMinor: 10000}, "L7", "", []domain.SkipRule{rule})

	assert.Empty(t, over.MatchedRuleID)
	assert.Equal(t, "capped", under.MatchedRuleID)
}

func TestResolveSkipRules_CategoryConstraint(t *testing.T) {
	rule := designationRule("cat", 1, time.Now(), []string{"L7"})
	rule.CategoryCodes = []string{"travel"}

	miss := services.ResolveSkipRules(domain.Claim{CategoryCode: "meals"}, "L7", "", []domain.SkipRule{rule})
	hit := services.ResolveSkipRules(domain.Claim{CategoryCode: "travel"}, "L7", "", []domain.SkipRule{rule})

	assert.Empty(t, miss.MatchedRuleID)
	assert.Equal(t, "cat", hit.MatchedRuleID)
}

func TestResolveSkipRules_EmailMatchIsCaseInsensitive(t *testing.T) {
	rule := domain.SkipRule{
		RuleID:    "email",
		IsActive:  true,
		Priority:  1,
		MatchType: domain.MatchEmail,
		Emails:    []string{"ceo@example.com"}, // stored lower-cased
		SkipHR:    true,
	}

	res := services.ResolveSkipRules(domain.Claim{}, "", "CEO@Example.Com", []domain.SkipRule{rule})

	assert.Equal(t, "email", res.MatchedRuleID)
	assert.True(t, res.SkipHR)
}

func TestResolveSkipRules_ProjectMatchRequiresProjectCode(t *testing.T) {
	rule := domain.SkipRule{
		RuleID:       "proj",
		IsActive:     true,
		Priority:     1,
		MatchType:    domain.MatchProject,
		ProjectCodes: []string{"APOLLO"},
		SkipManager:  true,
	}

	blank := services.ResolveSkipRules(domain.Claim{}, "", "", []domain.SkipRule{rule})
	matched := services.ResolveSkipRules(domain.Claim{ProjectCode: "APOLLO"}, "", "", []domain.SkipRule{rule})

	assert.Empty(t, blank.MatchedRuleID)
	assert.Equal(t, "proj", matched.MatchedRuleID)
}

func TestResolveSkipRules_InactiveRuleIgnored(t *testing.T) {
	rule := designationRule("off", 1, time.Now(), []string{"L7"})
	rule.IsActive = false

	res := services.ResolveSkipRules(domain.Claim{}, "L7", "", []domain.SkipRule{rule})

	assert.Empty(t, res.MatchedRuleID)
}

// --- Test Suite Setup ---
type SkipRuleServiceTestSuite struct {
	suite.Suite
	mockRuleRepo *MockSkipRuleRepository
	service      portssvc.SkipRuleSvcFacade
	tenantID     string
	adminID      string
}

func (suite *SkipRuleServiceTestSuite) SetupTest() {
	suite.mockRuleRepo = new(MockSkipRuleRepository)
	suite.service = services.NewSkipRuleService(suite.mockRuleRepo)
	suite.tenantID = uuid.NewString()
	suite.adminID = uuid.NewString()
}

func (suite *SkipRuleServiceTestSuite) TestCreateRule_Success() {
	ctx := context.Background()
	req := dto.CreateSkipRuleRequest{
		Name:         "Executives skip manager",
		IsActive:     true,
		Priority:     10,
		MatchType:    "designation",
		Designations: []string{"VP", "CTO"},
		SkipManager:  true,
	}

	suite.mockRuleRepo.On("SaveRule", ctx, mock.AnythingOfType("domain.SkipRule")).Return(nil).Once()

	rule, err := suite.service.CreateRule(ctx, suite.tenantID, req, suite.adminID)

	suite.Require().NoError(err)
	suite.NotEmpty(rule.RuleID)
	suite.Equal(suite.tenantID, rule.TenantID)
	suite.Equal(domain.MatchDesignation, rule.MatchType)
	suite.True(rule.SkipManager)
	suite.mockRuleRepo.AssertExpectations(suite.T())
}

func (suite *SkipRuleServiceTestSuite) TestCreateRule_LowersEmails() {
	ctx := context.Background()
	req := dto.CreateSkipRuleRequest{
		Name:      "CEO fast path",
		IsActive:  true,
		MatchType: "email",
		Emails:    []string{"CEO@Example.Com"},
		SkipHR:    true,
	}

	suite.mockRuleRepo.On("SaveRule", ctx, mock.AnythingOfType("domain.SkipRule")).Return(nil).Once()

	rule, err := suite.service.CreateRule(ctx, suite.tenantID, req, suite.adminID)

	suite.Require().NoError(err)
	suite.Equal([]string{"ceo@example.com"}, rule.Emails)
}

func (suite *SkipRuleServiceTestSuite) TestCreateRule_EmptyMatchSet() {
	ctx := context.Background()
	req := dto.CreateSkipRuleRequest{
		Name:        "broken",
		MatchType:   "designation",
		SkipManager: true,
	}

	_, err := suite.service.CreateRule(ctx, suite.tenantID, req, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "SaveRule", mock.Anything, mock.Anything)
}

func (suite *SkipRuleServiceTestSuite) TestCreateRule_NoSkipFlags() {
	ctx := context.Background()
	req := dto.CreateSkipRuleRequest{
		Name:         "does nothing",
		MatchType:    "designation",
		Designations: []string{"VP"},
	}

	_, err := suite.service.CreateRule(ctx, suite.tenantID, req, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SkipRuleServiceTestSuite) TestValidateRuleSet_Clean() {
	ctx := context.Background()
	rules := []domain.SkipRule{
		designationRule("a", 1, time.Now(), []string{"VP"}),
		designationRule("b", 2, time.Now(), []string{"VP"}), // different priority, no conflict
		designationRule("c", 1, time.Now(), []string{"CTO"}),
	}
	suite.mockRuleRepo.On("ListActiveRulesByTenant", ctx, suite.tenantID).Return(rules, nil).Once()

	conflicts, err := suite.service.ValidateRuleSet(ctx, suite.tenantID)

	suite.Require().NoError(err)
	suite.Empty(conflicts)
}

func (suite *SkipRuleServiceTestSuite) TestValidateRuleSet_ReportsOverlap() {
	ctx := context.Background()
	rules := []domain.SkipRule{
		designationRule("a", 1, time.Now(), []string{"VP", "CTO"}),
		designationRule("b", 1, time.Now(), []string{"CTO"}),
	}
	suite.mockRuleRepo.On("ListActiveRulesByTenant", ctx, suite.tenantID).Return(rules, nil).Once()

	conflicts, err := suite.service.ValidateRuleSet(ctx, suite.tenantID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRuleConflict)
	suite.Require().Len(conflicts, 1)
	suite.Equal("a", conflicts[0].FirstRuleID)
	suite.Equal("b", conflicts[0].SecondRuleID)
	suite.Equal(1, conflicts[0].Priority)
	suite.Equal("CTO", conflicts[0].MatchValue)
}

func (suite *SkipRuleServiceTestSuite) TestUpdateRule_RevalidatesInvariants() {
	ctx := context.Background()
	existing := designationRule("r1", 1, time.Now(), []string{"VP"})
	existing.TenantID = suite.tenantID

	suite.mockRuleRepo.On("FindRuleByID", ctx, suite.tenantID, "r1").Return(&existing, nil).Once()

	// Turning off the only skip flag leaves a rule that does nothing.
	off := false
	_, err := suite.service.UpdateRule(ctx, suite.tenantID, "r1", dto.UpdateSkipRuleRequest{SkipManager: &off}, suite.adminID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRuleRepo.AssertNotCalled(suite.T(), "UpdateRule", mock.Anything, mock.Anything)
}

func (suite *SkipRuleServiceTestSuite) TestDeactivateRule_Delegates() {
	ctx := context.Background()
	suite.mockRuleRepo.On("DeactivateRule", ctx, suite.tenantID, "r1", suite.adminID).Return(nil).Once()

	err := suite.service.DeactivateRule(ctx, suite.tenantID, "r1", suite.adminID)

	suite.Require().NoError(err)
	suite.mockRuleRepo.AssertExpectations(suite.T())
}

func TestSkipRuleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SkipRuleServiceTestSuite))
}
