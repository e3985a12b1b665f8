package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veloexp/claim_approval_app/internal/apperrors"
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
	portssvc "github.com/veloexp/claim_approval_app/internal/core/ports/services"
	"github.com/veloexp/claim_approval_app/internal/dto"
	"github.com/veloexp/claim_approval_app/internal/middleware"
)

var (
	ErrReasonTooShort   = errors.New("return reason must be at least 5 characters")
	ErrNegativeAmount   = errors.New("claim amount must not be negative")
	ErrNotClaimOwner    = errors.New("only the submitting employee may perform this action")
	ErrNoFieldChanges   = errors.New("hr edit must change at least one field")
	ErrBrokenStageChain = errors.New("claim stage is not part of its effective sequence")
	ErrMissingActor     = errors.New("acting user is required")
)

// minReturnReasonLen is the shortest acceptable return-to-employee reason.
const minReturnReasonLen = 5

// claimWorkflowService owns the canonical claim lifecycle. Every stage write
// goes through here, serialized per claim, with the history entry appended in
// the same database transaction as the stage change.
type claimWorkflowService struct {
	claimRepo       portsrepo.ClaimRepositoryFacade
	employeeRepo    portsrepo.EmployeeReader
	skipRuleSvc     portssvc.SkipRuleResolverSvc
	provenanceSvc   portssvc.ProvenanceSvcFacade
	notificationSvc portssvc.NotificationSvcFacade
	locks           *claimLocks
}

// NewClaimWorkflowService creates the claim workflow service.
func NewClaimWorkflowService(
	claimRepo portsrepo.ClaimRepositoryFacade,
	employeeRepo portsrepo.EmployeeReader,
	skipRuleSvc portssvc.SkipRuleResolverSvc,
	provenanceSvc portssvc.ProvenanceSvcFacade,
	notificationSvc portssvc.NotificationSvcFacade,
) portssvc.ClaimSvcFacade {
	return &claimWorkflowService{
		claimRepo:       claimRepo,
		employeeRepo:    employeeRepo,
		skipRuleSvc:     skipRuleSvc,
		provenanceSvc:   provenanceSvc,
		notificationSvc: notificationSvc,
		locks:           newClaimLocks(),
	}
}

var _ portssvc.ClaimSvcFacade = (*claimWorkflowService)(nil)

// CreateClaim creates a new claim in DRAFT and seeds its field provenance.
func (s *claimWorkflowService) CreateClaim(ctx context.Context, tenantID string, req dto.CreateClaimRequest, creatorID string) (*domain.Claim, error) {
	if req.AmountMinor < 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeAmount)
	}

	manualFields := make([]domain.FieldName, len(req.ManualFields))
	for i, f := range req.ManualFields {
		manualFields[i] = domain.FieldName(f)
	}

	now := time.Now().UTC()
	claim := domain.Claim{
		ClaimID:        uuid.NewString(),
		ClaimNumber:    newClaimNumber(),
		TenantID:       tenantID,
		EmployeeID:     creatorID,
		CurrencyCode:   req.CurrencyCode,
		AmountMinor:    req.AmountMinor,
		CategoryCode:   req.CategoryCode,
		ProjectCode:    req.ProjectCode,
		Vendor:         req.Vendor,
		Description:    req.Description,
		TransactionRef: req.TransactionRef,
		Stage:          domain.StageDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	provenance, err := s.provenanceSvc.InitialProvenance(claim.ClaimID, manualFields, creatorID, now)
	if err != nil {
		return nil, err
	}

	if err := s.claimRepo.SaveClaim(ctx, claim, provenance); err != nil {
		return nil, fmt.Errorf("failed to create claim: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Claim created",
		slog.String("claim_id", claim.ClaimID),
		slog.String("claim_number", claim.ClaimNumber),
		slog.String("tenant_id", tenantID))
	return &claim, nil
}

// UpdateDraftClaim applies employee edits to a claim still in DRAFT.
// Provenance is untouched: the ledger records submission-time origin, and
// only the HR edit operation may retag fields afterwards.
func (s *claimWorkflowService) UpdateDraftClaim(ctx context.Context, tenantID string, claimID string, req dto.UpdateClaimRequest, updaterID string) (*domain.Claim, error) {
	unlock := s.locks.Lock(claimID)
	defer unlock()

	claim, err := s.claimRepo.FindClaimByID(ctx, tenantID, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Stage != domain.StageDraft {
		return nil, fmt.Errorf("%w: cannot edit claim in stage %s", apperrors.ErrInvalidState, claim.Stage)
	}
	if claim.EmployeeID != updaterID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrNotClaimOwner)
	}

	if req.AmountMinor != nil {
		if *req.AmountMinor < 0 {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeAmount)
		}
		claim.AmountMinor = *req.AmountMinor
	}
	if req.CategoryCode != nil {
		claim.CategoryCode = *req.CategoryCode
	}
	if req.ProjectCode != nil {
		claim.ProjectCode = *req.ProjectCode
	}
	if req.Vendor != nil {
		claim.Vendor = *req.Vendor
	}
	if req.Description != nil {
		claim.Description = *req.Description
	}
	if req.TransactionRef != nil {
		claim.TransactionRef = *req.TransactionRef
	}
	claim.LastUpdatedAt = time.Now().UTC()
	claim.LastUpdatedBy = updaterID

	if err := s.claimRepo.UpdateDraftClaim(ctx, *claim); err != nil {
		return nil, fmt.Errorf("failed to update claim %s: %w", claimID, err)
	}
	return claim, nil
}

// SubmitClaim moves a DRAFT or RETURNED_TO_EMPLOYEE claim into its first
// effective approval stage. The skip resolution is computed fresh on every
// submission; a resubmission after a return may therefore take a different
// path if rules or claim facts changed.
func (s *claimWorkflowService) SubmitClaim(ctx context.Context, tenantID string, claimID string, actor dto.ClaimActor) (*domain.Claim, error) {
	if actor.ActorID == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrMissingActor)
	}

	unlock := s.locks.Lock(claimID)
	defer unlock()

	claim, err := s.claimRepo.FindClaimByID(ctx, tenantID, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Stage != domain.StageDraft && claim.Stage != domain.StageReturnedToEmployee {
		return nil, fmt.Errorf("%w: cannot submit from stage %s", apperrors.ErrInvalidState, claim.Stage)
	}
	if claim.EmployeeID != actor.ActorID && !actor.Role.IsAggregate() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrNotClaimOwner)
	}

	designation, email := actor.DesignationCode, actor.Email
	if designation == "" || email == "" {
		submitter, err := s.employeeRepo.FindEmployeeByID(ctx, claim.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load submitting employee %s: %w", claim.EmployeeID, err)
		}
		if designation == "" {
			designation = submitter.DesignationCode
		}
		if email == "" {
			email = submitter.Email
		}
	}

	resolution, err := s.skipRuleSvc.Resolve(ctx, tenantID, *claim, designation, email)
	if err != nil {
		return nil, err
	}

	sequence := resolution.EffectiveSequence()
	fromStage := claim.Stage
	toStage := domain.StageFinanceApproved
	if len(sequence) > 0 {
		toStage = sequence[0]
	}

	now := time.Now().UTC()
	claim.Stage = toStage
	claim.EffectiveStages = sequence
	claim.SubmittedAt = &now
	claim.LastUpdatedAt = now
	claim.LastUpdatedBy = actor.ActorID

	entry := newHistoryEntry(claim.ClaimID, domain.ActionSubmit, actor, "", now)
	if err := s.claimRepo.RecordTransition(ctx, *claim, fromStage, entry); err != nil {
		return nil, fmt.Errorf("failed to record submission of claim %s: %w", claimID, err)
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Claim submitted",
		slog.String("claim_id", claim.ClaimID),
		slog.String("to_stage", string(toStage)),
		slog.String("matched_rule_id", resolution.MatchedRuleID))

	s.notificationSvc.OnTransition(ctx, *claim, fromStage, toStage, actor.ActorID)
	return claim, nil
}

// ApproveClaim advances a pending claim along the sequence fixed at
// submission time. The sequence is not recomputed on approval.
func (s *claimWorkflowService) ApproveClaim(ctx context.Context, tenantID string, claimID string, actor dto.ClaimActor, comment string) (*domain.Claim, error) {
	return s.transition(ctx, tenantID, claimID, actor, func(claim *domain.Claim) (domain.ClaimStage, domain.ApprovalAction, string, error) {
		next, ok := claim.NextStageAfter(claim.Stage)
		if !ok {
			return "", "", "", fmt.Errorf("claim %s: %w", claim.ClaimID, ErrBrokenStageChain)
		}
		return next, domain.ActionApproved, comment, nil
	})
}

// RejectClaim moves a pending claim to REJECTED. Terminal: nothing
// transitions out of a rejection.
func (s *claimWorkflowService) RejectClaim(ctx context.Context, tenantID string, claimID string, actor dto.ClaimActor, comment string) (*domain.Claim, error) {
	return s.transition(ctx, tenantID, claimID, actor, func(claim *domain.Claim) (domain.ClaimStage, domain.ApprovalAction, string, error) {
		return domain.StageRejected, domain.ActionRejected, comment, nil
	})
}

// ReturnClaim moves a pending claim back to the employee for changes.
func (s *claimWorkflowService) ReturnClaim(ctx context.Context, tenantID string, claimID string, actor dto.ClaimActor, reason string) (*domain.Claim, error) {
	if len(strings.TrimSpace(reason)) < minReturnReasonLen {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrReasonTooShort)
	}
	return s.transition(ctx, tenantID, claimID, actor, func(claim *domain.Claim) (domain.ClaimStage, domain.ApprovalAction, string, error) {
		return domain.StageReturnedToEmployee, domain.ActionReturned, reason, nil
	})
}

// SettleClaim moves a fully approved claim to SETTLED.
func (s *claimWorkflowService) SettleClaim(ctx context.Context, tenantID string, claimID string, actor dto.ClaimActor) (*domain.Claim, error) {
	if actor.ActorID == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrMissingActor)
	}

	unlock := s.locks.Lock(claimID)
	defer unlock()

	claim, err := s.claimRepo.FindClaimByID(ctx, tenantID, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Stage != domain.StageFinanceApproved {
		return nil, fmt.Errorf("%w: cannot settle from stage %s", apperrors.ErrInvalidState, claim.Stage)
	}
	if actor.Role != domain.RoleFinance && !actor.Role.IsAggregate() {
		return nil, fmt.Errorf("%w: role %s cannot settle claims", apperrors.ErrWrongStage, actor.Role)
	}

	now := time.Now().UTC()
	fromStage := claim.Stage
	claim.Stage = domain.StageSettled
	claim.LastUpdatedAt = now
	claim.LastUpdatedBy = actor.ActorID

	entry := newHistoryEntry(claim.ClaimID, domain.ActionSettled, actor, "", now)
	if err := s.claimRepo.RecordTransition(ctx, *claim, fromStage, entry); err != nil {
		return nil, fmt.Errorf("failed to settle claim %s: %w", claimID, err)
	}

	s.notificationSvc.OnTransition(ctx, *claim, fromStage, domain.StageSettled, actor.ActorID)
	return claim, nil
}

// HREditClaim applies HR field edits during the PENDING_HR window. The field
// values, the hrOverride provenance retags and the single edited history
// entry land in one transaction; a failure anywhere leaves all three
// untouched. The claim's stage does not change.
func (s *claimWorkflowService) HREditClaim(ctx context.Context, tenantID string, claimID string, actor dto.ClaimActor, fieldChanges map[string]any) (*domain.Claim, error) {
	if actor.Role != domain.RoleHR {
		return nil, fmt.Errorf("%w: role %s cannot perform hr edits", apperrors.ErrWrongStage, actor.Role)
	}
	if len(fieldChanges) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoFieldChanges)
	}

	unlock := s.locks.Lock(claimID)
	defer unlock()

	claim, err := s.claimRepo.FindClaimByID(ctx, tenantID, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Stage != domain.StagePendingHR {
		return nil, fmt.Errorf("%w: hr edits are only allowed in %s, claim is in %s", apperrors.ErrInvalidState, domain.StagePendingHR, claim.Stage)
	}

	// Validate and apply in the ledger's stable field order so the history
	// comment is deterministic.
	changed := make([]domain.FieldName, 0, len(fieldChanges))
	for _, field := range domain.EditableFields {
		value, ok := fieldChanges[string(field)]
		if !ok {
			continue
		}
		if err := applyFieldChange(claim, field, value); err != nil {
			return nil, err
		}
		changed = append(changed, field)
	}
	if len(changed) != len(fieldChanges) {
		for name := range fieldChanges {
			if !domain.FieldName(name).IsValid() {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownField, name)
			}
		}
	}

	now := time.Now().UTC()
	claim.LastUpdatedAt = now
	claim.LastUpdatedBy = actor.ActorID

	provenance, err := s.provenanceSvc.HROverrides(claim.ClaimID, changed, actor.ActorID, now)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(changed))
	for i, f := range changed {
		names[i] = string(f)
	}
	entry := newHistoryEntry(claim.ClaimID, domain.ActionEdited, actor, "edited fields: "+strings.Join(names, ", "), now)

	if err := s.claimRepo.RecordHREdit(ctx, *claim, provenance, entry); err != nil {
		return nil, fmt.Errorf("failed to record hr edit on claim %s: %w", claimID, err)
	}

	s.notificationSvc.OnHREdit(ctx, *claim, changed, actor.ActorID)
	return claim, nil
}

// GetClaimByID retrieves a claim by its ID within a tenant.
func (s *claimWorkflowService) GetClaimByID(ctx context.Context, tenantID string, claimID string) (*domain.Claim, error) {
	return s.claimRepo.FindClaimByID(ctx, tenantID, claimID)
}

// ListClaims retrieves a page of a tenant's claims, newest first.
func (s *claimWorkflowService) ListClaims(ctx context.Context, tenantID string, limit int, nextToken string) ([]domain.Claim, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	return s.claimRepo.ListClaims(ctx, tenantID, limit, nextToken)
}

// GetApprovalHistory retrieves the append-only history for a claim.
func (s *claimWorkflowService) GetApprovalHistory(ctx context.Context, tenantID string, claimID string) ([]domain.ApprovalHistoryEntry, error) {
	if _, err := s.claimRepo.FindClaimByID(ctx, tenantID, claimID); err != nil {
		return nil, err
	}
	return s.claimRepo.FindHistoryByClaimID(ctx, claimID)
}

// transition runs the shared pending-stage transition protocol: lock, load,
// verify the actor's role owns the current stage, compute the target stage,
// record atomically, notify.
func (s *claimWorkflowService) transition(
	ctx context.Context,
	tenantID string,
	claimID string,
	actor dto.ClaimActor,
	decide func(claim *domain.Claim) (domain.ClaimStage, domain.ApprovalAction, string, error),
) (*domain.Claim, error) {
	if actor.ActorID == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrMissingActor)
	}

	unlock := s.locks.Lock(claimID)
	defer unlock()

	claim, err := s.claimRepo.FindClaimByID(ctx, tenantID, claimID)
	if err != nil {
		return nil, err
	}
	if !claim.Stage.IsPending() {
		return nil, fmt.Errorf("%w: claim is in stage %s", apperrors.ErrInvalidState, claim.Stage)
	}
	if !actor.Role.CanActOn(claim.Stage) {
		return nil, fmt.Errorf("%w: role %s cannot act on stage %s", apperrors.ErrWrongStage, actor.Role, claim.Stage)
	}

	toStage, action, comment, err := decide(claim)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	fromStage := claim.Stage
	claim.Stage = toStage
	claim.LastUpdatedAt = now
	claim.LastUpdatedBy = actor.ActorID

	entry := newHistoryEntry(claim.ClaimID, action, actor, comment, now)
	if err := s.claimRepo.RecordTransition(ctx, *claim, fromStage, entry); err != nil {
		return nil, fmt.Errorf("failed to record %s on claim %s: %w", action, claimID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Claim transitioned",
		slog.String("claim_id", claim.ClaimID),
		slog.String("action", string(action)),
		slog.String("from_stage", string(fromStage)),
		slog.String("to_stage", string(toStage)))

	s.notificationSvc.OnTransition(ctx, *claim, fromStage, toStage, actor.ActorID)
	return claim, nil
}

// applyFieldChange writes one HR-edited value onto the claim. Amount expects
// a non-negative number in minor units; everything else expects a string.
func applyFieldChange(claim *domain.Claim, field domain.FieldName, value any) error {
	if field == domain.FieldAmount {
		minor, err := toMinorUnits(value)
		if err != nil {
			return fmt.Errorf("%w: amount: %v", apperrors.ErrValidation, err)
		}
		if minor < 0 {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeAmount)
		}
		claim.AmountMinor = minor
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: field %s expects a string value", apperrors.ErrValidation, field)
	}
	switch field {
	case domain.FieldVendor:
		claim.Vendor = str
	case domain.FieldCategory:
		claim.CategoryCode = str
	case domain.FieldDescription:
		claim.Description = str
	case domain.FieldTransactionRef:
		claim.TransactionRef = str
	case domain.FieldProjectCode:
		claim.ProjectCode = str
	default:
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownField, field)
	}
	return nil
}

// toMinorUnits accepts the numeric types a JSON body or a direct caller may
// produce for the amount field.
func toMinorUnits(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		if v != float64(int64(v)) {
			return 0, errors.New("amount must be an integer number of minor units")
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("unsupported amount type %T", value)
	}
}

// newHistoryEntry builds one immutable approval history record.
func newHistoryEntry(claimID string, action domain.ApprovalAction, actor dto.ClaimActor, comment string, at time.Time) domain.ApprovalHistoryEntry {
	return domain.ApprovalHistoryEntry{
		EntryID:   uuid.NewString(),
		ClaimID:   claimID,
		Action:    action,
		ActorID:   actor.ActorID,
		ActorRole: actor.Role,
		Comment:   comment,
		CreatedAt: at,
	}
}

// newClaimNumber generates a human-readable claim number. Uniqueness per
// tenant is enforced by the claims table constraint.
func newClaimNumber() string {
	return "CLM-" + strings.ToUpper(uuid.NewString()[:8])
}
