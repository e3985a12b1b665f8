package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloexp/claim_approval_app/internal/apperrors"
	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

var claimColumnNames = []string{
	"claim_id", "claim_number", "tenant_id", "employee_id", "currency_code", "amount_minor",
	"category_code", "project_code", "vendor", "description", "transaction_ref", "stage",
	"effective_stages", "submitted_at", "created_at", "created_by", "last_updated_at", "last_updated_by",
}

// anyArgs builds n pgxmock.AnyArg matchers; pgxmock v4 requires the expected
// argument count to match the actual call, so expectations that don't care
// about values still need placeholders.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func testClaim() domain.Claim {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return domain.Claim{
		ClaimID:      "claim-1",
		ClaimNumber:  "CLM-ABCD1234",
		TenantID:     "tenant-1",
		EmployeeID:   "emp-1",
		CurrencyCode: "USD",
		AmountMinor:  12500,
		CategoryCode: "TRAVEL",
		Vendor:       "Acme Travel",
		Stage:        domain.StagePendingManager,
		EffectiveStages: []domain.ClaimStage{
			domain.StagePendingManager, domain.StagePendingHR, domain.StagePendingFinance,
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "emp-1",
			LastUpdatedAt: now,
			LastUpdatedBy: "emp-1",
		},
	}
}

func claimRow(c domain.Claim) []any {
	stages := make([]string, len(c.EffectiveStages))
	for i, s := range c.EffectiveStages {
		stages[i] = string(s)
	}
	return []any{
		c.ClaimID, c.ClaimNumber, c.TenantID, c.EmployeeID, c.CurrencyCode, c.AmountMinor,
		c.CategoryCode, c.ProjectCode, c.Vendor, c.Description, c.TransactionRef, string(c.Stage),
		stages, c.SubmittedAt, c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
	}
}

func TestFindClaimByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxClaimRepository(mock)
	claim := testClaim()

	mock.ExpectQuery("SELECT .* FROM claims").
		WithArgs("tenant-1", "claim-1").
		WillReturnRows(pgxmock.NewRows(claimColumnNames).AddRow(claimRow(claim)...))

	found, err := repo.FindClaimByID(context.Background(), "tenant-1", "claim-1")
	require.NoError(t, err)
	assert.Equal(t, claim.ClaimID, found.ClaimID)
	assert.Equal(t, domain.StagePendingManager, found.Stage)
	assert.Equal(t, claim.EffectiveStages, found.EffectiveStages)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindClaimByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxClaimRepository(mock)

	mock.ExpectQuery("SELECT .* FROM claims").
		WithArgs("tenant-1", "missing").
		WillReturnRows(pgxmock.NewRows(claimColumnNames))

	_, err = repo.FindClaimByID(context.Background(), "tenant-1", "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveClaim_InsertsClaimAndProvenance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxClaimRepository(mock)
	claim := testClaim()
	provenance := []domain.FieldProvenance{
		{ClaimID: claim.ClaimID, Field: domain.FieldAmount, Source: domain.SourceAutomated, UpdatedAt: claim.CreatedAt, UpdatedBy: "emp-1"},
		{ClaimID: claim.ClaimID, Field: domain.FieldVendor, Source: domain.SourceManual, UpdatedAt: claim.CreatedAt, UpdatedBy: "emp-1"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO claims").WithArgs(anyArgs(18)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	batch := mock.ExpectBatch()
	batch.ExpectExec("INSERT INTO field_provenance").WithArgs(anyArgs(5)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	batch.ExpectExec("INSERT INTO field_provenance").WithArgs(anyArgs(5)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = repo.SaveClaim(context.Background(), claim, provenance)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTransition_AppendsHistoryInSameTx(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxClaimRepository(mock)
	claim := testClaim()
	entry := domain.ApprovalHistoryEntry{
		EntryID:   "entry-1",
		ClaimID:   claim.ClaimID,
		Action:    domain.ActionApproved,
		ActorID:   "mgr-1",
		ActorRole: domain.RoleManager,
		CreatedAt: claim.LastUpdatedAt,
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE claims").WithArgs(anyArgs(8)...).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO approval_history").WithArgs(anyArgs(7)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = repo.RecordTransition(context.Background(), claim, domain.StagePendingManager, entry)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTransition_StageGuardMissRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxClaimRepository(mock)
	claim := testClaim()
	entry := domain.ApprovalHistoryEntry{EntryID: "entry-1", ClaimID: claim.ClaimID, Action: domain.ActionApproved}

	mock.ExpectBegin()
	// Another transition already moved the claim out of the expected stage.
	mock.ExpectExec("UPDATE claims").WithArgs(anyArgs(8)...).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err = repo.RecordTransition(context.Background(), claim, domain.StagePendingManager, entry)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordHREdit_AllWritesInOneTx(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxClaimRepository(mock)
	claim := testClaim()
	claim.Stage = domain.StagePendingHR
	provenance := []domain.FieldProvenance{
		{ClaimID: claim.ClaimID, Field: domain.FieldAmount, Source: domain.SourceHROverride, UpdatedAt: claim.LastUpdatedAt, UpdatedBy: "hr-1"},
	}
	entry := domain.ApprovalHistoryEntry{
		EntryID:   "entry-2",
		ClaimID:   claim.ClaimID,
		Action:    domain.ActionEdited,
		ActorID:   "hr-1",
		ActorRole: domain.RoleHR,
		Comment:   "edited fields: amount",
		CreatedAt: claim.LastUpdatedAt,
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE claims").WithArgs(anyArgs(11)...).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	batch := mock.ExpectBatch()
	batch.ExpectExec("INSERT INTO field_provenance").WithArgs(anyArgs(5)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO approval_history").WithArgs(anyArgs(7)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = repo.RecordHREdit(context.Background(), claim, provenance, entry)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordHREdit_WrongStageRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxClaimRepository(mock)
	claim := testClaim()
	entry := domain.ApprovalHistoryEntry{EntryID: "entry-3", ClaimID: claim.ClaimID, Action: domain.ActionEdited}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE claims").WithArgs(anyArgs(11)...).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err = repo.RecordHREdit(context.Background(), claim, nil, entry)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListClaimsByStages(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxClaimRepository(mock)
	claim := testClaim()

	mock.ExpectQuery("SELECT .* FROM claims").
		WithArgs(anyArgs(2)...).
		WillReturnRows(pgxmock.NewRows(claimColumnNames).AddRow(claimRow(claim)...))

	claims, err := repo.ListClaimsByStages(context.Background(), "tenant-1", []domain.ClaimStage{domain.StagePendingManager})
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, claim.ClaimID, claims[0].ClaimID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
