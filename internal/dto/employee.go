package dto

import (
	"time"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

// CreateEmployeeRequest defines the data needed to register an employee.
type CreateEmployeeRequest struct {
	TenantID        string `json:"tenantID" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	DesignationCode string `json:"designationCode" binding:"required"`
	Role            string `json:"role" binding:"required,claimrole"`
	Password        string `json:"password" binding:"required,min=8"`
}

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID      string    `json:"employeeID"`
	TenantID        string    `json:"tenantID"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	DesignationCode string    `json:"designationCode"`
	Role            string    `json:"role"`
	CreatedAt       time.Time `json:"createdAt"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
}

// ToEmployeeResponse converts a domain.Employee to an EmployeeResponse DTO.
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:      e.EmployeeID,
		TenantID:        e.TenantID,
		Name:            e.Name,
		Email:           e.Email,
		DesignationCode: e.DesignationCode,
		Role:            string(e.Role),
		CreatedAt:       e.CreatedAt,
		LastUpdatedAt:   e.LastUpdatedAt,
	}
}
