package repositories

import (
	"context"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

// EmployeeReader defines read operations for employee data
type EmployeeReader interface {
	// FindEmployeeByID retrieves an employee by ID.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployeeByEmail retrieves an employee by lower-cased email.
	FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)

	// ListEmployeesByRole retrieves all active employees of a tenant holding the given role.
	ListEmployeesByRole(ctx context.Context, tenantID string, role domain.Role) ([]domain.Employee, error)
}

// EmployeeWriter defines write operations for employee data
type EmployeeWriter interface {
	// SaveEmployee persists a new employee.
	SaveEmployee(ctx context.Context, employee domain.Employee) error

	// UpdateEmployee persists changes to an existing employee.
	UpdateEmployee(ctx context.Context, employee domain.Employee) error
}

// EmployeeRepositoryFacade combines all employee repository interfaces
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
}
