package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veloexp/claim_approval_app/internal/apperrors"
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
	portssvc "github.com/veloexp/claim_approval_app/internal/core/ports/services"
	"github.com/veloexp/claim_approval_app/internal/dto"
	"github.com/veloexp/claim_approval_app/internal/utils"
)

// employeeService manages the employee directory.
type employeeService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade) portssvc.EmployeeSvcFacade {
	return &employeeService{employeeRepo: employeeRepo}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

// CreateEmployee registers a new employee with a hashed password.
func (s *employeeService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorID string) (*domain.Employee, error) {
	role := domain.Role(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, req.Role)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	employee := domain.Employee{
		EmployeeID:      uuid.NewString(),
		TenantID:        req.TenantID,
		Name:            req.Name,
		Email:           strings.ToLower(req.Email),
		DesignationCode: req.DesignationCode,
		Role:            role,
		PasswordHash:    hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return &employee, nil
}

// GetEmployeeByID retrieves an employee by ID.
func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return s.employeeRepo.FindEmployeeByID(ctx, employeeID)
}

// GetEmployeeByEmail retrieves an employee by email, case-insensitively.
func (s *employeeService) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return s.employeeRepo.FindEmployeeByEmail(ctx, strings.ToLower(email))
}

// ListEmployeesByRole retrieves a tenant's active employees holding a role.
func (s *employeeService) ListEmployeesByRole(ctx context.Context, tenantID string, role domain.Role) ([]domain.Employee, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, role)
	}
	return s.employeeRepo.ListEmployeesByRole(ctx, tenantID, role)
}
