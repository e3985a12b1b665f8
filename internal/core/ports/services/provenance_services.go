package services

import (
	"context"
	"time"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

// ProvenanceSvcFacade is the field-provenance ledger: it is the single
// authority on which fields are tracked and which actor class last set them.
type ProvenanceSvcFacade interface {
	// GetSource returns the source tag for one claim field.
	GetSource(ctx context.Context, claimID string, field domain.FieldName) (domain.FieldSource, error)

	// SourcesForClaim returns the source tag of every tracked field.
	SourcesForClaim(ctx context.Context, claimID string) (map[domain.FieldName]domain.FieldSource, error)

	// SetSource explicitly sets the source tag for one field.
	SetSource(ctx context.Context, claimID string, field domain.FieldName, source domain.FieldSource, actorID string) error

	// InitialProvenance builds the ledger rows for a newly created claim:
	// every tracked field defaults to automated, except the listed manually
	// entered fields. Fails with ErrUnknownField on an untracked name.
	InitialProvenance(claimID string, manualFields []domain.FieldName, actorID string, at time.Time) ([]domain.FieldProvenance, error)

	// HROverrides builds hrOverride rows for the given fields, validating
	// every name. The claim repository persists them atomically with the
	// field values and the edited history entry.
	HROverrides(claimID string, fields []domain.FieldName, actorID string, at time.Time) ([]domain.FieldProvenance, error)
}
