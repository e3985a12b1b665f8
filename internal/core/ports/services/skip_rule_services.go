package services

import (
	"context"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
	"github.com/veloexp/claim_approval_app/internal/dto"
)

// SkipRuleResolverSvc evaluates a tenant's rule set against one claim
// submission. Resolution is pure apart from the rule-set read and is safe to
// call concurrently.
type SkipRuleResolverSvc interface {
	// Resolve returns the skip flags of the single highest-priority active
	// rule matching the claim and actor facts, or all-false when none match.
	Resolve(ctx context.Context, tenantID string, claim domain.Claim, actorDesignation string, actorEmail string) (domain.SkipResolution, error)
}

// SkipRuleReaderSvc defines read operations for skip rule administration
type SkipRuleReaderSvc interface {
	// GetRuleByID retrieves a rule by its ID within a tenant.
	GetRuleByID(ctx context.Context, tenantID string, ruleID string) (*domain.SkipRule, error)

	// ListRules retrieves all of a tenant's rules in evaluation order.
	ListRules(ctx context.Context, tenantID string) ([]domain.SkipRule, error)
}

// SkipRuleWriterSvc defines tenant-admin write operations for skip rules
type SkipRuleWriterSvc interface {
	// CreateRule validates and persists a new skip rule.
	CreateRule(ctx context.Context, tenantID string, req dto.CreateSkipRuleRequest, creatorID string) (*domain.SkipRule, error)

	// UpdateRule validates and persists edits to an existing rule.
	UpdateRule(ctx context.Context, tenantID string, ruleID string, req dto.UpdateSkipRuleRequest, updaterID string) (*domain.SkipRule, error)

	// DeactivateRule marks a rule inactive without deleting it.
	DeactivateRule(ctx context.Context, tenantID string, ruleID string, updaterID string) error

	// ValidateRuleSet runs the authoring-time conflict pass over a tenant's
	// active rules, reporting same-priority rules that match the same value.
	ValidateRuleSet(ctx context.Context, tenantID string) ([]dto.RuleConflict, error)
}

// SkipRuleSvcFacade combines all skip-rule service interfaces
type SkipRuleSvcFacade interface {
	SkipRuleResolverSvc
	SkipRuleReaderSvc
	SkipRuleWriterSvc
}
