package mapping

import (
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	"github.com/veloexp/claim_approval_app/internal/models"
)

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:      d.EmployeeID,
		TenantID:        d.TenantID,
		Name:            d.Name,
		Email:           d.Email,
		DesignationCode: d.DesignationCode,
		Role:            string(d.Role),
		PasswordHash:    d.PasswordHash,
		AuditFields:     ToModelAuditFields(d.AuditFields),
		DeletedAt:       d.DeletedAt,
	}
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:      m.EmployeeID,
		TenantID:        m.TenantID,
		Name:            m.Name,
		Email:           m.Email,
		DesignationCode: m.DesignationCode,
		Role:            domain.Role(m.Role),
		PasswordHash:    m.PasswordHash,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
		DeletedAt:       m.DeletedAt,
	}
}

// ToDomainEmployeeSlice converts a slice of model Employees to domain Employees
func ToDomainEmployeeSlice(ms []models.Employee) []domain.Employee {
	ds := make([]domain.Employee, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEmployee(m)
	}
	return ds
}
