package models

import "time"

// FieldProvenance represents a row in the field_provenance table. One row
// per (claim, field); updates replace the row in place.
type FieldProvenance struct {
	ClaimID   string    `db:"claim_id"`
	Field     string    `db:"field"`
	Source    string    `db:"source"`
	UpdatedAt time.Time `db:"updated_at"`
	UpdatedBy string    `db:"updated_by"`
}
