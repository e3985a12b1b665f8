package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/veloexp/claim_approval_app/internal/apperrors"
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
	"github.com/veloexp/claim_approval_app/internal/models"
	"github.com/veloexp/claim_approval_app/internal/utils/mapping"
)

type PgxProvenanceRepository struct {
	BaseRepository
}

// newPgxProvenanceRepository creates a new repository for field provenance data.
func newPgxProvenanceRepository(pool PGXPool) portsrepo.ProvenanceRepositoryFacade {
	return &PgxProvenanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxProvenanceRepository implements portsrepo.ProvenanceRepositoryFacade
var _ portsrepo.ProvenanceRepositoryFacade = (*PgxProvenanceRepository)(nil)

// FindSource retrieves the provenance entry for a single claim field.
func (r *PgxProvenanceRepository) FindSource(ctx context.Context, claimID string, field domain.FieldName) (*domain.FieldProvenance, error) {
	query := `
		SELECT claim_id, field, source, updated_at, updated_by
		FROM field_provenance
		WHERE claim_id = $1 AND field = $2;
	`
	var m models.FieldProvenance
	err := r.Pool.QueryRow(ctx, query, claimID, string(field)).Scan(
		&m.ClaimID,
		&m.Field,
		&m.Source,
		&m.UpdatedAt,
		&m.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find provenance for claim "+claimID, err)
	}

	entry := mapping.ToDomainFieldProvenance(m)
	return &entry, nil
}

// FindSourcesByClaimID retrieves all provenance entries for a claim.
func (r *PgxProvenanceRepository) FindSourcesByClaimID(ctx context.Context, claimID string) ([]domain.FieldProvenance, error) {
	query := `
		SELECT claim_id, field, source, updated_at, updated_by
		FROM field_provenance
		WHERE claim_id = $1
		ORDER BY field ASC;
	`
	rows, err := r.Pool.Query(ctx, query, claimID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query provenance for claim "+claimID, err)
	}
	defer rows.Close()

	entries := []models.FieldProvenance{}
	for rows.Next() {
		var m models.FieldProvenance
		err := rows.Scan(&m.ClaimID, &m.Field, &m.Source, &m.UpdatedAt, &m.UpdatedBy)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan provenance row for claim "+claimID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating provenance rows for claim "+claimID, err)
	}

	return mapping.ToDomainFieldProvenanceSlice(entries), nil
}

// UpsertSource inserts or replaces the provenance entry for one field.
func (r *PgxProvenanceRepository) UpsertSource(ctx context.Context, entry domain.FieldProvenance) error {
	m := mapping.ToModelFieldProvenance(entry)
	query := `
		INSERT INTO field_provenance (claim_id, field, source, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (claim_id, field)
		DO UPDATE SET source = EXCLUDED.source, updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by;
	`
	_, err := r.Pool.Exec(ctx, query, m.ClaimID, m.Field, m.Source, m.UpdatedAt, m.UpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert provenance for claim "+m.ClaimID, err)
	}
	return nil
}

// UpsertSources inserts or replaces a batch of provenance entries in a single
// transaction.
func (r *PgxProvenanceRepository) UpsertSources(ctx context.Context, entries []domain.FieldProvenance) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := upsertProvenanceInTx(ctx, tx, entries); err != nil {
		return apperrors.NewAppError(500, "failed to upsert provenance batch", err)
	}

	return r.Commit(ctx, tx)
}
