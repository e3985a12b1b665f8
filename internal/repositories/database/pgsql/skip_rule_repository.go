package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/veloexp/claim_approval_app/internal/apperrors"
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
	"github.com/veloexp/claim_approval_app/internal/models"
	"github.com/veloexp/claim_approval_app/internal/utils/mapping"
)

type PgxSkipRuleRepository struct {
	BaseRepository
}

// newPgxSkipRuleRepository creates a new repository for skip rule data.
func newPgxSkipRuleRepository(pool PGXPool) portsrepo.SkipRuleRepositoryFacade {
	return &PgxSkipRuleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSkipRuleRepository implements portsrepo.SkipRuleRepositoryFacade
var _ portsrepo.SkipRuleRepositoryFacade = (*PgxSkipRuleRepository)(nil)

const skipRuleColumns = `rule_id, tenant_id, name, is_active, priority, match_type, designations,
	emails, project_codes, max_amount_minor, category_codes, skip_manager, skip_hr, skip_finance,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveRule persists a new skip rule.
func (r *PgxSkipRuleRepository) SaveRule(ctx context.Context, rule domain.SkipRule) error {
	modelRule := mapping.ToModelSkipRule(rule)
	query := `
		INSERT INTO skip_rules (` + skipRuleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRule.RuleID,
		modelRule.TenantID,
		modelRule.Name,
		modelRule.IsActive,
		modelRule.Priority,
		modelRule.MatchType,
		modelRule.Designations,
		modelRule.Emails,
		modelRule.ProjectCodes,
		modelRule.MaxAmountMinor,
		modelRule.CategoryCodes,
		modelRule.SkipManager,
		modelRule.SkipHR,
		modelRule.SkipFinance,
		modelRule.CreatedAt,
		modelRule.CreatedBy,
		modelRule.LastUpdatedAt,
		modelRule.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert skip rule "+modelRule.RuleID, err)
	}
	return nil
}

// UpdateRule persists changes to an existing skip rule.
func (r *PgxSkipRuleRepository) UpdateRule(ctx context.Context, rule domain.SkipRule) error {
	modelRule := mapping.ToModelSkipRule(rule)
	query := `
		UPDATE skip_rules
		SET name = $1, is_active = $2, priority = $3, match_type = $4, designations = $5,
		    emails = $6, project_codes = $7, max_amount_minor = $8, category_codes = $9,
		    skip_manager = $10, skip_hr = $11, skip_finance = $12,
		    last_updated_at = $13, last_updated_by = $14
		WHERE rule_id = $15 AND tenant_id = $16;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelRule.Name,
		modelRule.IsActive,
		modelRule.Priority,
		modelRule.MatchType,
		modelRule.Designations,
		modelRule.Emails,
		modelRule.ProjectCodes,
		modelRule.MaxAmountMinor,
		modelRule.CategoryCodes,
		modelRule.SkipManager,
		modelRule.SkipHR,
		modelRule.SkipFinance,
		modelRule.LastUpdatedAt,
		modelRule.LastUpdatedBy,
		modelRule.RuleID,
		modelRule.TenantID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update skip rule "+modelRule.RuleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateRule marks a rule inactive without deleting it.
func (r *PgxSkipRuleRepository) DeactivateRule(ctx context.Context, tenantID string, ruleID string, updaterID string) error {
	query := `
		UPDATE skip_rules
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE rule_id = $3 AND tenant_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, time.Now().UTC(), updaterID, ruleID, tenantID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate skip rule "+ruleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindRuleByID retrieves a rule by its ID within a tenant.
func (r *PgxSkipRuleRepository) FindRuleByID(ctx context.Context, tenantID string, ruleID string) (*domain.SkipRule, error) {
	query := `SELECT ` + skipRuleColumns + ` FROM skip_rules WHERE tenant_id = $1 AND rule_id = $2;`
	row := r.Pool.QueryRow(ctx, query, tenantID, ruleID)

	modelRule, err := scanSkipRule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find skip rule by ID "+ruleID, err)
	}

	domainRule := mapping.ToDomainSkipRule(modelRule)
	return &domainRule, nil
}

// ListRulesByTenant retrieves all rules of a tenant in evaluation order.
func (r *PgxSkipRuleRepository) ListRulesByTenant(ctx context.Context, tenantID string) ([]domain.SkipRule, error) {
	query := `
		SELECT ` + skipRuleColumns + `
		FROM skip_rules
		WHERE tenant_id = $1
		ORDER BY priority ASC, created_at ASC;
	`
	return r.queryRules(ctx, query, tenantID)
}

// ListActiveRulesByTenant retrieves only active rules, same ordering.
func (r *PgxSkipRuleRepository) ListActiveRulesByTenant(ctx context.Context, tenantID string) ([]domain.SkipRule, error) {
	query := `
		SELECT ` + skipRuleColumns + `
		FROM skip_rules
		WHERE tenant_id = $1 AND is_active = TRUE
		ORDER BY priority ASC, created_at ASC;
	`
	return r.queryRules(ctx, query, tenantID)
}

func (r *PgxSkipRuleRepository) queryRules(ctx context.Context, query string, tenantID string) ([]domain.SkipRule, error) {
	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query skip rules for tenant "+tenantID, err)
	}
	defer rows.Close()

	rules := []models.SkipRule{}
	for rows.Next() {
		m, err := scanSkipRule(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan skip rule row", err)
		}
		rules = append(rules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating skip rule rows", err)
	}

	return mapping.ToDomainSkipRuleSlice(rules), nil
}

// scanSkipRule scans one rule row in skipRuleColumns order.
func scanSkipRule(row pgx.Row) (models.SkipRule, error) {
	var m models.SkipRule
	err := row.Scan(
		&m.RuleID,
		&m.TenantID,
		&m.Name,
		&m.IsActive,
		&m.Priority,
		&m.MatchType,
		&m.Designations,
		&m.Emails,
		&m.ProjectCodes,
		&m.MaxAmountMinor,
		&m.CategoryCodes,
		&m.SkipManager,
		&m.SkipHR,
		&m.SkipFinance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
