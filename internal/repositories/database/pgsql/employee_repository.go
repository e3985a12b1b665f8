package pgsql

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/veloexp/claim_approval_app/internal/apperrors"
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
	"github.com/veloexp/claim_approval_app/internal/models"
	"github.com/veloexp/claim_approval_app/internal/utils/mapping"
)

type PgxEmployeeRepository struct {
	BaseRepository
}

// newPgxEmployeeRepository creates a new repository for employee data.
func newPgxEmployeeRepository(pool PGXPool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEmployeeRepository implements portsrepo.EmployeeRepositoryFacade
var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeColumns = `employee_id, tenant_id, name, email, designation_code, role, password_hash,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

// SaveEmployee persists a new employee.
func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EmployeeID,
		m.TenantID,
		m.Name,
		m.Email,
		m.DesignationCode,
		m.Role,
		m.PasswordHash,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert employee "+m.EmployeeID, err)
	}
	return nil
}

// UpdateEmployee persists changes to an existing employee.
func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	m := mapping.ToModelEmployee(employee)
	query := `
		UPDATE employees
		SET name = $1, email = $2, designation_code = $3, role = $4, password_hash = $5,
		    last_updated_at = $6, last_updated_by = $7, deleted_at = $8
		WHERE employee_id = $9;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Email,
		m.DesignationCode,
		m.Role,
		m.PasswordHash,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.DeletedAt,
		m.EmployeeID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update employee "+m.EmployeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindEmployeeByID retrieves an employee by ID.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1 AND deleted_at IS NULL;`
	return r.queryOne(ctx, query, employeeID)
}

// FindEmployeeByEmail retrieves an employee by lower-cased email.
func (r *PgxEmployeeRepository) FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1 AND deleted_at IS NULL;`
	return r.queryOne(ctx, query, strings.ToLower(email))
}

// ListEmployeesByRole retrieves all active employees of a tenant holding the given role.
func (r *PgxEmployeeRepository) ListEmployeesByRole(ctx context.Context, tenantID string, role domain.Role) ([]domain.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE tenant_id = $1 AND role = $2 AND deleted_at IS NULL
		ORDER BY name ASC;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, string(role))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employees for tenant "+tenantID, err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		m, err := scanEmployee(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan employee row", err)
		}
		employees = append(employees, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating employee rows", err)
	}

	return mapping.ToDomainEmployeeSlice(employees), nil
}

func (r *PgxEmployeeRepository) queryOne(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	m, err := scanEmployee(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find employee", err)
	}

	employee := mapping.ToDomainEmployee(m)
	return &employee, nil
}

// scanEmployee scans one employee row in employeeColumns order.
func scanEmployee(row pgx.Row) (models.Employee, error) {
	var m models.Employee
	err := row.Scan(
		&m.EmployeeID,
		&m.TenantID,
		&m.Name,
		&m.Email,
		&m.DesignationCode,
		&m.Role,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	return m, err
}
