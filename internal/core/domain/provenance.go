package domain

import "time"

// FieldName is the closed set of claim fields tracked by the provenance
// ledger. Keying provenance by a closed enum rather than free-form strings
// prevents silently-ignored typos.
type FieldName string

const (
	FieldAmount         FieldName = "amount"
	FieldVendor         FieldName = "vendor"
	FieldCategory       FieldName = "category"
	FieldDescription    FieldName = "description"
	FieldTransactionRef FieldName = "transactionRef"
	FieldProjectCode    FieldName = "projectCode"
)

// EditableFields lists every field the provenance ledger tracks, in a stable order.
var EditableFields = []FieldName{
	FieldAmount,
	FieldVendor,
	FieldCategory,
	FieldDescription,
	FieldTransactionRef,
	FieldProjectCode,
}

// IsValid reports whether the field name is one of the tracked fields.
func (f FieldName) IsValid() bool {
	switch f {
	case FieldAmount, FieldVendor, FieldCategory, FieldDescription, FieldTransactionRef, FieldProjectCode:
		return true
	}
	return false
}

// FieldSource identifies which actor class last set a field's value.
type FieldSource string

const (
	// SourceAutomated marks values extracted by the OCR pipeline.
	SourceAutomated FieldSource = "automated"
	// SourceManual marks values entered by the employee at submission.
	SourceManual FieldSource = "manual"
	// SourceHROverride marks values edited by HR during the review window.
	// Once set it never silently reverts except via another explicit HR edit.
	SourceHROverride FieldSource = "hrOverride"
)

// IsValid reports whether the source is one of the defined enum values.
func (s FieldSource) IsValid() bool {
	switch s {
	case SourceAutomated, SourceManual, SourceHROverride:
		return true
	}
	return false
}

// FieldProvenance records, per claim field, which actor class last set its value.
type FieldProvenance struct {
	ClaimID   string      `json:"claimID"`
	Field     FieldName   `json:"field"`
	Source    FieldSource `json:"source"`
	UpdatedAt time.Time   `json:"updatedAt"`
	UpdatedBy string      `json:"updatedBy"` // EmployeeID reference
}
