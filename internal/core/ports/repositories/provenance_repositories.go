package repositories

import (
	"context"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

// ProvenanceReader defines read operations for field provenance data
type ProvenanceReader interface {
	// FindSource retrieves the provenance entry for a single claim field.
	FindSource(ctx context.Context, claimID string, field domain.FieldName) (*domain.FieldProvenance, error)

	// FindSourcesByClaimID retrieves all provenance entries for a claim.
	FindSourcesByClaimID(ctx context.Context, claimID string) ([]domain.FieldProvenance, error)
}

// ProvenanceWriter defines write operations for field provenance data
type ProvenanceWriter interface {
	// UpsertSource inserts or replaces the provenance entry for one field.
	UpsertSource(ctx context.Context, entry domain.FieldProvenance) error

	// UpsertSources inserts or replaces a batch of provenance entries in a
	// single transaction; either all land or none do.
	UpsertSources(ctx context.Context, entries []domain.FieldProvenance) error
}

// ProvenanceRepositoryFacade combines all provenance repository interfaces
type ProvenanceRepositoryFacade interface {
	ProvenanceReader
	ProvenanceWriter
}
