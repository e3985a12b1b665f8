package domain

import "time"

// Employee represents a user of the claim system within a tenant.
type Employee struct {
	EmployeeID      string `json:"employeeID"` // Primary Key (UUID)
	TenantID        string `json:"tenantID"`
	Name            string `json:"name"`
	Email           string `json:"email"` // Stored lower-cased
	DesignationCode string `json:"designationCode"`
	Role            Role   `json:"role"`
	PasswordHash    string `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete
}
