package services

import (
	"context"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
	"github.com/veloexp/claim_approval_app/internal/dto"
)

// EmployeeReaderSvc defines read operations for the employee directory
type EmployeeReaderSvc interface {
	// GetEmployeeByID retrieves an employee by ID.
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// GetEmployeeByEmail retrieves an employee by email (case-insensitive).
	GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)

	// ListEmployeesByRole retrieves a tenant's active employees holding a role.
	ListEmployeesByRole(ctx context.Context, tenantID string, role domain.Role) ([]domain.Employee, error)
}

// EmployeeWriterSvc defines write operations for the employee directory
type EmployeeWriterSvc interface {
	// CreateEmployee registers a new employee with a hashed password.
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorID string) (*domain.Employee, error)
}

// EmployeeSvcFacade combines all employee service interfaces
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeWriterSvc
}
