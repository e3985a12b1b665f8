package mapping

import (
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	"github.com/veloexp/claim_approval_app/internal/models"
)

// ToModelFieldProvenance converts a domain FieldProvenance to a model row
func ToModelFieldProvenance(d domain.FieldProvenance) models.FieldProvenance {
	return models.FieldProvenance{
		ClaimID:   d.ClaimID,
		Field:     string(d.Field),
		Source:    string(d.Source),
		UpdatedAt: d.UpdatedAt,
		UpdatedBy: d.UpdatedBy,
	}
}

// ToDomainFieldProvenance converts a model row to a domain FieldProvenance
func ToDomainFieldProvenance(m models.FieldProvenance) domain.FieldProvenance {
	return domain.FieldProvenance{
		ClaimID:   m.ClaimID,
		Field:     domain.FieldName(m.Field),
		Source:    domain.FieldSource(m.Source),
		UpdatedAt: m.UpdatedAt,
		UpdatedBy: m.UpdatedBy,
	}
}

// ToDomainFieldProvenanceSlice converts model rows to domain FieldProvenance values
func ToDomainFieldProvenanceSlice(ms []models.FieldProvenance) []domain.FieldProvenance {
	ds := make([]domain.FieldProvenance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFieldProvenance(m)
	}
	return ds
}
