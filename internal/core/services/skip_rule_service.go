package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veloexp/claim_approval_app/internal/apperrors"
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
	portssvc "github.com/veloexp/claim_approval_app/internal/core/ports/services"
	"github.com/veloexp/claim_approval_app/internal/dto"
)

var (
	ErrEmptyMatchSet = errors.New("skip rule match set is empty for its match type")
	ErrNoSkipFlags   = errors.New("skip rule must skip at least one stage")
)

// skipRuleService evaluates and administers tenant skip rules.
type skipRuleService struct {
	ruleRepo portsrepo.SkipRuleRepositoryFacade
}

// NewSkipRuleService creates a new SkipRuleService.
func NewSkipRuleService(ruleRepo portsrepo.SkipRuleRepositoryFacade) portssvc.SkipRuleSvcFacade {
	return &skipRuleService{ruleRepo: ruleRepo}
}

var _ portssvc.SkipRuleSvcFacade = (*skipRuleService)(nil)

// Resolve returns the skip flags for one claim submission. First-match-wins:
// surviving rules are ordered by (priority asc, creation asc) and only the
// first matching rule's flags apply. No match means nothing is skipped.
func (s *skipRuleService) Resolve(ctx context.Context, tenantID string, claim domain.Claim, actorDesignation string, actorEmail string) (domain.SkipResolution, error) {
	rules, err := s.ruleRepo.ListActiveRulesByTenant(ctx, tenantID)
	if err != nil {
		return domain.SkipResolution{}, fmt.Errorf("failed to load skip rules for tenant %s: %w", tenantID, err)
	}
	return ResolveSkipRules(claim, actorDesignation, actorEmail, rules), nil
}

// ResolveSkipRules is the pure resolution algorithm, exported for direct use
// and testing. It never mutates its inputs and is safe to call concurrently.
func ResolveSkipRules(claim domain.Claim, actorDesignation string, actorEmail string, rules []domain.SkipRule) domain.SkipResolution {
	matching := make([]domain.SkipRule, 0, len(rules))
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		if !ruleMatches(&rule, claim, actorDesignation, actorEmail) {
			continue
		}
		matching = append(matching, rule)
	}
	if len(matching) == 0 {
		return domain.SkipResolution{}
	}

	sort.SliceStable(matching, func(i, j int) bool {
		if matching[i].Priority != matching[j].Priority {
			return matching[i].Priority < matching[j].Priority
		}
		return matching[i].CreatedAt.Before(matching[j].CreatedAt)
	})

	// Only the first rule's flags take effect; later matches are ignored.
	first := matching[0]
	return domain.SkipResolution{
		SkipManager:   first.SkipManager,
		SkipHR:        first.SkipHR,
		SkipFinance:   first.SkipFinance,
		MatchedRuleID: first.RuleID,
	}
}

// ruleMatches checks the rule's match set and optional constraints against
// one claim and actor.
func ruleMatches(rule *domain.SkipRule, claim domain.Claim, actorDesignation string, actorEmail string) bool {
	switch rule.MatchType {
	case domain.MatchDesignation:
		if !containsString(rule.Designations, actorDesignation) {
			return false
		}
	case domain.MatchEmail:
		if !containsString(rule.Emails, strings.ToLower(actorEmail)) {
			return false
		}
	case domain.MatchProject:
		if claim.ProjectCode == "" || !containsString(rule.ProjectCodes, claim.ProjectCode) {
			return false
		}
	default:
		return false
	}

	if rule.MaxAmountMinor != nil && claim.AmountMinor > *rule.MaxAmountMinor {
		return false
	}
	if len(rule.CategoryCodes) > 0 && !containsString(rule.CategoryCodes, claim.CategoryCode) {
		return false
	}
	return true
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// GetRuleByID retrieves a rule by its ID within a tenant.
func (s *skipRuleService) GetRuleByID(ctx context.Context, tenantID string, ruleID string) (*domain.SkipRule, error) {
	return s.ruleRepo.FindRuleByID(ctx, tenantID, ruleID)
}

// ListRules retrieves all of a tenant's rules in evaluation order.
func (s *skipRuleService) ListRules(ctx context.Context, tenantID string) ([]domain.SkipRule, error) {
	return s.ruleRepo.ListRulesByTenant(ctx, tenantID)
}

// CreateRule validates and persists a new skip rule.
func (s *skipRuleService) CreateRule(ctx context.Context, tenantID string, req dto.CreateSkipRuleRequest, creatorID string) (*domain.SkipRule, error) {
	now := time.Now().UTC()
	rule := domain.SkipRule{
		RuleID:         uuid.NewString(),
		TenantID:       tenantID,
		Name:           req.Name,
		IsActive:       req.IsActive,
		Priority:       req.Priority,
		MatchType:      domain.RuleMatchType(req.MatchType),
		Designations:   req.Designations,
		Emails:         lowerAll(req.Emails),
		ProjectCodes:   req.ProjectCodes,
		MaxAmountMinor: req.MaxAmountMinor,
		CategoryCodes:  req.CategoryCodes,
		SkipManager:    req.SkipManager,
		SkipHR:         req.SkipHR,
		SkipFinance:    req.SkipFinance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := validateRule(&rule); err != nil {
		return nil, err
	}
	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to save skip rule: %w", err)
	}
	return &rule, nil
}

// UpdateRule validates and persists edits to an existing rule.
func (s *skipRuleService) UpdateRule(ctx context.Context, tenantID string, ruleID string, req dto.UpdateSkipRuleRequest, updaterID string) (*domain.SkipRule, error) {
	rule, err := s.ruleRepo.FindRuleByID(ctx, tenantID, ruleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}
	if req.Designations != nil {
		rule.Designations = req.Designations
	}
	if req.Emails != nil {
		rule.Emails = lowerAll(req.Emails)
	}
	if req.ProjectCodes != nil {
		rule.ProjectCodes = req.ProjectCodes
	}
	if req.MaxAmountMinor != nil {
		rule.MaxAmountMinor = req.MaxAmountMinor
	}
	if req.CategoryCodes != nil {
		rule.CategoryCodes = req.CategoryCodes
	}
	if req.SkipManager != nil {
		rule.SkipManager = *req.SkipManager
	}
	if req.SkipHR != nil {
		rule.SkipHR = *req.SkipHR
	}
	if req.SkipFinance != nil {
		rule.SkipFinance = *req.SkipFinance
	}
	rule.LastUpdatedAt = time.Now().UTC()
	rule.LastUpdatedBy = updaterID

	if err := validateRule(rule); err != nil {
		return nil, err
	}
	if err := s.ruleRepo.UpdateRule(ctx, *rule); err != nil {
		return nil, fmt.Errorf("failed to update skip rule %s: %w", ruleID, err)
	}
	return rule, nil
}

// DeactivateRule marks a rule inactive without deleting it.
func (s *skipRuleService) DeactivateRule(ctx context.Context, tenantID string, ruleID string, updaterID string) error {
	return s.ruleRepo.DeactivateRule(ctx, tenantID, ruleID, updaterID)
}

// ValidateRuleSet is the authoring-time conflict pass: two active rules with
// the same priority matching the same value would make resolution depend on
// creation order alone, which usually signals an authoring mistake.
func (s *skipRuleService) ValidateRuleSet(ctx context.Context, tenantID string) ([]dto.RuleConflict, error) {
	rules, err := s.ruleRepo.ListActiveRulesByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var conflicts []dto.RuleConflict
	for i := 0; i < len(rules); i++ {
		for j := i + 1; j < len(rules); j++ {
			a, b := rules[i], rules[j]
			if a.Priority != b.Priority || a.MatchType != b.MatchType {
				continue
			}
			for _, v := range a.MatchSet() {
				if containsString(b.MatchSet(), v) {
					conflicts = append(conflicts, dto.RuleConflict{
						FirstRuleID:  a.RuleID,
						SecondRuleID: b.RuleID,
						Priority:     a.Priority,
						MatchValue:   v,
					})
				}
			}
		}
	}
	if len(conflicts) > 0 {
		return conflicts, fmt.Errorf("%w: %d overlapping rule pair(s) in tenant %s", apperrors.ErrRuleConflict, len(conflicts), tenantID)
	}
	return nil, nil
}

// validateRule enforces the skip-rule invariants: exactly the selected match
// type's set is populated and at least one stage is skipped.
func validateRule(rule *domain.SkipRule) error {
	if !rule.MatchType.IsValid() {
		return fmt.Errorf("%w: invalid match type %q", apperrors.ErrValidation, rule.MatchType)
	}
	if len(rule.MatchSet()) == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyMatchSet)
	}
	if !rule.SkipsAnyStage() {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoSkipFlags)
	}
	return nil
}

func lowerAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
