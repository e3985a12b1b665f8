package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/veloexp/claim_approval_app/internal/apperrors"
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
	"github.com/veloexp/claim_approval_app/internal/models"
	"github.com/veloexp/claim_approval_app/internal/utils/mapping"
	"github.com/veloexp/claim_approval_app/internal/utils/pagination"
)

type PgxClaimRepository struct {
	BaseRepository
}

// newPgxClaimRepository creates a new repository for claim and approval history data.
func newPgxClaimRepository(pool PGXPool) portsrepo.ClaimRepositoryWithTx {
	return &PgxClaimRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxClaimRepository implements portsrepo.ClaimRepositoryWithTx
var _ portsrepo.ClaimRepositoryWithTx = (*PgxClaimRepository)(nil)

const claimColumns = `claim_id, claim_number, tenant_id, employee_id, currency_code, amount_minor,
	category_code, project_code, vendor, description, transaction_ref, stage, effective_stages,
	submitted_at, created_at, created_by, last_updated_at, last_updated_by`

const insertHistoryQuery = `
	INSERT INTO approval_history (entry_id, claim_id, action, actor_id, actor_role, comment, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

// SaveClaim persists a new claim together with its initial field provenance
// within a DB transaction.
func (r *PgxClaimRepository) SaveClaim(ctx context.Context, claim domain.Claim, provenance []domain.FieldProvenance) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelClaim := mapping.ToModelClaim(claim)
	claimQuery := `
		INSERT INTO claims (` + claimColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, claimQuery,
		modelClaim.ClaimID,
		modelClaim.ClaimNumber,
		modelClaim.TenantID,
		modelClaim.EmployeeID,
		modelClaim.CurrencyCode,
		modelClaim.AmountMinor,
		modelClaim.CategoryCode,
		modelClaim.ProjectCode,
		modelClaim.Vendor,
		modelClaim.Description,
		modelClaim.TransactionRef,
		modelClaim.Stage,
		modelClaim.EffectiveStages,
		modelClaim.SubmittedAt,
		modelClaim.CreatedAt,
		modelClaim.CreatedBy,
		modelClaim.LastUpdatedAt,
		modelClaim.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert claim "+modelClaim.ClaimID, err)
	}

	if err := upsertProvenanceInTx(ctx, tx, provenance); err != nil {
		return apperrors.NewAppError(500, "failed to insert provenance for claim "+modelClaim.ClaimID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateDraftClaim persists edits to a claim still in DRAFT. The update is
// guarded by the stage so a claim submitted concurrently cannot be edited.
func (r *PgxClaimRepository) UpdateDraftClaim(ctx context.Context, claim domain.Claim) error {
	modelClaim := mapping.ToModelClaim(claim)
	query := `
		UPDATE claims
		SET amount_minor = $1, category_code = $2, project_code = $3, vendor = $4,
		    description = $5, transaction_ref = $6, last_updated_at = $7, last_updated_by = $8
		WHERE claim_id = $9 AND tenant_id = $10 AND stage = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelClaim.AmountMinor,
		modelClaim.CategoryCode,
		modelClaim.ProjectCode,
		modelClaim.Vendor,
		modelClaim.Description,
		modelClaim.TransactionRef,
		modelClaim.LastUpdatedAt,
		modelClaim.LastUpdatedBy,
		modelClaim.ClaimID,
		modelClaim.TenantID,
		string(domain.StageDraft),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update claim "+modelClaim.ClaimID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecordTransition writes the claim's new stage and appends the history entry
// in one transaction. The stage update is guarded by the prior stage; a
// concurrent transition makes the guarded update miss and everything rolls
// back.
func (r *PgxClaimRepository) RecordTransition(ctx context.Context, claim domain.Claim, fromStage domain.ClaimStage, entry domain.ApprovalHistoryEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelClaim := mapping.ToModelClaim(claim)
	query := `
		UPDATE claims
		SET stage = $1, effective_stages = $2, submitted_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE claim_id = $6 AND tenant_id = $7 AND stage = $8;
	`
	tag, err := tx.Exec(ctx, query,
		modelClaim.Stage,
		modelClaim.EffectiveStages,
		modelClaim.SubmittedAt,
		modelClaim.LastUpdatedAt,
		modelClaim.LastUpdatedBy,
		modelClaim.ClaimID,
		modelClaim.TenantID,
		string(fromStage),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update stage of claim "+modelClaim.ClaimID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := insertHistoryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// RecordHREdit writes edited field values, upserts the hrOverride provenance
// rows and appends the edited history entry, all in one transaction.
func (r *PgxClaimRepository) RecordHREdit(ctx context.Context, claim domain.Claim, provenance []domain.FieldProvenance, entry domain.ApprovalHistoryEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelClaim := mapping.ToModelClaim(claim)
	query := `
		UPDATE claims
		SET amount_minor = $1, category_code = $2, project_code = $3, vendor = $4,
		    description = $5, transaction_ref = $6, last_updated_at = $7, last_updated_by = $8
		WHERE claim_id = $9 AND tenant_id = $10 AND stage = $11;
	`
	tag, err := tx.Exec(ctx, query,
		modelClaim.AmountMinor,
		modelClaim.CategoryCode,
		modelClaim.ProjectCode,
		modelClaim.Vendor,
		modelClaim.Description,
		modelClaim.TransactionRef,
		modelClaim.LastUpdatedAt,
		modelClaim.LastUpdatedBy,
		modelClaim.ClaimID,
		modelClaim.TenantID,
		string(domain.StagePendingHR),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply hr edit to claim "+modelClaim.ClaimID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := upsertProvenanceInTx(ctx, tx, provenance); err != nil {
		return apperrors.NewAppError(500, "failed to upsert provenance for claim "+modelClaim.ClaimID, err)
	}

	if err := insertHistoryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindClaimByID retrieves a claim by its ID within a tenant.
func (r *PgxClaimRepository) FindClaimByID(ctx context.Context, tenantID string, claimID string) (*domain.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE tenant_id = $1 AND claim_id = $2;`
	row := r.Pool.QueryRow(ctx, query, tenantID, claimID)

	modelClaim, err := scanClaim(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find claim by ID "+claimID, err)
	}

	domainClaim := mapping.ToDomainClaim(modelClaim)
	return &domainClaim, nil
}

// ListClaims retrieves a page of a tenant's claims, newest first, using
// keyset pagination on (created_at, claim_id).
func (r *PgxClaimRepository) ListClaims(ctx context.Context, tenantID string, limit int, nextToken string) ([]domain.Claim, string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + claimColumns + ` FROM claims WHERE tenant_id = $1`
	orderByClause := `ORDER BY created_at DESC, claim_id DESC`

	args := []interface{}{tenantID}
	query := baseQuery
	if nextToken != "" {
		lastCreatedAt, lastClaimID, decodeErr := pagination.DecodeToken(nextToken)
		if decodeErr != nil {
			return nil, "", apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (created_at, claim_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastClaimID)
	}
	args = append(args, fetchLimit)
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", apperrors.NewAppError(500, "failed to query claims for tenant "+tenantID, err)
	}
	defer rows.Close()

	modelClaims, err := scanClaimRows(rows)
	if err != nil {
		return nil, "", err
	}

	var token string
	if len(modelClaims) > limit {
		modelClaims = modelClaims[:limit]
		last := modelClaims[len(modelClaims)-1]
		token = pagination.EncodeToken(last.CreatedAt, last.ClaimID)
	}

	return mapping.ToDomainClaimSlice(modelClaims), token, nil
}

// ListClaimsByStages retrieves all claims of a tenant currently in any of the
// given stages.
func (r *PgxClaimRepository) ListClaimsByStages(ctx context.Context, tenantID string, stages []domain.ClaimStage) ([]domain.Claim, error) {
	stageStrs := make([]string, len(stages))
	for i, s := range stages {
		stageStrs[i] = string(s)
	}

	query := `SELECT ` + claimColumns + ` FROM claims WHERE tenant_id = $1 AND stage = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, tenantID, stageStrs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query claims by stage for tenant "+tenantID, err)
	}
	defer rows.Close()

	modelClaims, err := scanClaimRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainClaimSlice(modelClaims), nil
}

// FindHistoryByClaimID retrieves the approval history for a claim, oldest first.
func (r *PgxClaimRepository) FindHistoryByClaimID(ctx context.Context, claimID string) ([]domain.ApprovalHistoryEntry, error) {
	query := `
		SELECT entry_id, claim_id, action, actor_id, actor_role, comment, created_at
		FROM approval_history
		WHERE claim_id = $1
		ORDER BY created_at ASC, entry_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, claimID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query history for claim "+claimID, err)
	}
	defer rows.Close()

	entries := []models.ApprovalHistory{}
	for rows.Next() {
		var e models.ApprovalHistory
		err := rows.Scan(
			&e.EntryID,
			&e.ClaimID,
			&e.Action,
			&e.ActorID,
			&e.ActorRole,
			&e.Comment,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan history row for claim "+claimID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating history rows for claim "+claimID, err)
	}

	return mapping.ToDomainApprovalHistorySlice(entries), nil
}

// insertHistoryInTx appends one approval history row inside a transaction.
func insertHistoryInTx(ctx context.Context, tx pgx.Tx, entry domain.ApprovalHistoryEntry) error {
	modelEntry := mapping.ToModelApprovalHistory(entry)
	_, err := tx.Exec(ctx, insertHistoryQuery,
		modelEntry.EntryID,
		modelEntry.ClaimID,
		modelEntry.Action,
		modelEntry.ActorID,
		modelEntry.ActorRole,
		modelEntry.Comment,
		modelEntry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert history entry for claim "+modelEntry.ClaimID, err)
	}
	return nil
}

// upsertProvenanceInTx inserts or replaces provenance rows inside a transaction.
func upsertProvenanceInTx(ctx context.Context, tx pgx.Tx, entries []domain.FieldProvenance) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO field_provenance (claim_id, field, source, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (claim_id, field)
		DO UPDATE SET source = EXCLUDED.source, updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by;
	`
	for _, entry := range entries {
		modelEntry := mapping.ToModelFieldProvenance(entry)
		batch.Queue(query,
			modelEntry.ClaimID,
			modelEntry.Field,
			modelEntry.Source,
			modelEntry.UpdatedAt,
			modelEntry.UpdatedBy,
		)
	}
	return tx.SendBatch(ctx, batch).Close()
}

// scanClaim scans one claim row in claimColumns order.
func scanClaim(row pgx.Row) (models.Claim, error) {
	var m models.Claim
	err := row.Scan(
		&m.ClaimID,
		&m.ClaimNumber,
		&m.TenantID,
		&m.EmployeeID,
		&m.CurrencyCode,
		&m.AmountMinor,
		&m.CategoryCode,
		&m.ProjectCode,
		&m.Vendor,
		&m.Description,
		&m.TransactionRef,
		&m.Stage,
		&m.EffectiveStages,
		&m.SubmittedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanClaimRows(rows pgx.Rows) ([]models.Claim, error) {
	claims := []models.Claim{}
	for rows.Next() {
		m, err := scanClaim(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan claim row", err)
		}
		claims = append(claims, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating claim rows", err)
	}
	return claims, nil
}
