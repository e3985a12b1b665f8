package repositories

import (
	"context"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

// SkipRuleReader defines read operations for skip rule data
type SkipRuleReader interface {
	// FindRuleByID retrieves a rule by its ID within a tenant.
	FindRuleByID(ctx context.Context, tenantID string, ruleID string) (*domain.SkipRule, error)

	// ListRulesByTenant retrieves all rules of a tenant ordered by
	// (priority asc, created_at asc).
	ListRulesByTenant(ctx context.Context, tenantID string) ([]domain.SkipRule, error)

	// ListActiveRulesByTenant retrieves only active rules, same ordering.
	ListActiveRulesByTenant(ctx context.Context, tenantID string) ([]domain.SkipRule, error)
}

// SkipRuleWriter defines write operations for skip rule data
type SkipRuleWriter interface {
	// SaveRule persists a new skip rule.
	SaveRule(ctx context.Context, rule domain.SkipRule) error

	// UpdateRule persists changes to an existing skip rule.
	UpdateRule(ctx context.Context, rule domain.SkipRule) error

	// DeactivateRule marks a rule inactive without deleting it.
	DeactivateRule(ctx context.Context, tenantID string, ruleID string, updaterID string) error
}

// SkipRuleRepositoryFacade combines all skip-rule repository interfaces
type SkipRuleRepositoryFacade interface {
	SkipRuleReader
	SkipRuleWriter
}
