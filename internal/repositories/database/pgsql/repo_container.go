package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	claimRepo := newPgxClaimRepository(dbPool)
	skipRuleRepo := newPgxSkipRuleRepository(dbPool)
	provenanceRepo := newPgxProvenanceRepository(dbPool)
	employeeRepo := newPgxEmployeeRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ClaimRepo:        claimRepo,
		SkipRuleRepo:     skipRuleRepo,
		ProvenanceRepo:   provenanceRepo,
		EmployeeRepo:     employeeRepo,
		NotificationRepo: notificationRepo,
	}
}
