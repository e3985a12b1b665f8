package services

import (
	"context"
	"fmt"
	"time"

	"github.com/veloexp/claim_approval_app/internal/apperrors"
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
	portssvc "github.com/veloexp/claim_approval_app/internal/core/ports/services"
)

// provenanceLedgerService tracks which actor class last set each claim field.
type provenanceLedgerService struct {
	provenanceRepo portsrepo.ProvenanceRepositoryFacade
}

// NewProvenanceLedgerService creates a new provenance ledger service.
func NewProvenanceLedgerService(provenanceRepo portsrepo.ProvenanceRepositoryFacade) portssvc.ProvenanceSvcFacade {
	return &provenanceLedgerService{provenanceRepo: provenanceRepo}
}

var _ portssvc.ProvenanceSvcFacade = (*provenanceLedgerService)(nil)

// GetSource returns the source tag for one claim field.
func (s *provenanceLedgerService) GetSource(ctx context.Context, claimID string, field domain.FieldName) (domain.FieldSource, error) {
	if !field.IsValid() {
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnknownField, field)
	}
	entry, err := s.provenanceRepo.FindSource(ctx, claimID, field)
	if err != nil {
		return "", err
	}
	return entry.Source, nil
}

// SourcesForClaim returns the source tag of every tracked field for a claim.
func (s *provenanceLedgerService) SourcesForClaim(ctx context.Context, claimID string) (map[domain.FieldName]domain.FieldSource, error) {
	entries, err := s.provenanceRepo.FindSourcesByClaimID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no provenance for claim %s", apperrors.ErrNotFound, claimID)
	}
	sources := make(map[domain.FieldName]domain.FieldSource, len(entries))
	for _, e := range entries {
		sources[e.Field] = e.Source
	}
	return sources, nil
}

// SetSource explicitly sets the source tag for one field.
func (s *provenanceLedgerService) SetSource(ctx context.Context, claimID string, field domain.FieldName, source domain.FieldSource, actorID string) error {
	if !field.IsValid() {
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownField, field)
	}
	if !source.IsValid() {
		return fmt.Errorf("%w: invalid provenance source %q", apperrors.ErrValidation, source)
	}
	return s.provenanceRepo.UpsertSource(ctx, domain.FieldProvenance{
		ClaimID:   claimID,
		Field:     field,
		Source:    source,
		UpdatedAt: time.Now().UTC(),
		UpdatedBy: actorID,
	})
}

// InitialProvenance builds the ledger rows for a newly created claim. Every
// tracked field defaults to automated (OCR origin); fields listed in
// manualFields were keyed in by the employee and are tagged manual.
func (s *provenanceLedgerService) InitialProvenance(claimID string, manualFields []domain.FieldName, actorID string, at time.Time) ([]domain.FieldProvenance, error) {
	manual := make(map[domain.FieldName]struct{}, len(manualFields))
	for _, f := range manualFields {
		if !f.IsValid() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownField, f)
		}
		manual[f] = struct{}{}
	}

	entries := make([]domain.FieldProvenance, 0, len(domain.EditableFields))
	for _, f := range domain.EditableFields {
		source := domain.SourceAutomated
		if _, ok := manual[f]; ok {
			source = domain.SourceManual
		}
		entries = append(entries, domain.FieldProvenance{
			ClaimID:   claimID,
			Field:     f,
			Source:    source,
			UpdatedAt: at,
			UpdatedBy: actorID,
		})
	}
	return entries, nil
}

// HROverrides builds hrOverride rows for the given fields. Validation is
// all-or-nothing: one unknown name fails the whole batch so the caller never
// persists partial provenance.
func (s *provenanceLedgerService) HROverrides(claimID string, fields []domain.FieldName, actorID string, at time.Time) ([]domain.FieldProvenance, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to override", apperrors.ErrValidation)
	}
	entries := make([]domain.FieldProvenance, 0, len(fields))
	for _, f := range fields {
		if !f.IsValid() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownField, f)
		}
		entries = append(entries, domain.FieldProvenance{
			ClaimID:   claimID,
			Field:     f,
			Source:    domain.SourceHROverride,
			UpdatedAt: at,
			UpdatedBy: actorID,
		})
	}
	return entries, nil
}
