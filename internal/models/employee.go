package models

import "time"

// Employee represents a row in the employees table.
type Employee struct {
	EmployeeID      string `db:"employee_id"`
	TenantID        string `db:"tenant_id"`
	Name            string `db:"name"`
	Email           string `db:"email"`
	DesignationCode string `db:"designation_code"`
	Role            string `db:"role"`
	PasswordHash    string `db:"password_hash"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"` // Nullable, soft delete
}
