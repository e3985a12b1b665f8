package services

import (
	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
	portssvc "github.com/veloexp/claim_approval_app/internal/core/ports/services"
)

// NewServiceContainer wires all application services from the repository
// provider. Services depend on each other only through their port
// interfaces.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	skipRuleSvc := NewSkipRuleService(repos.SkipRuleRepo)
	provenanceSvc := NewProvenanceLedgerService(repos.ProvenanceRepo)
	notificationSvc := NewNotificationService(repos.EmployeeRepo, repos.NotificationRepo)
	claimSvc := NewClaimWorkflowService(repos.ClaimRepo, repos.EmployeeRepo, skipRuleSvc, provenanceSvc, notificationSvc)
	queueSvc := NewApprovalQueueService(repos.ClaimRepo)
	employeeSvc := NewEmployeeService(repos.EmployeeRepo)

	return &portssvc.ServiceContainer{
		Claim:        claimSvc,
		SkipRule:     skipRuleSvc,
		Provenance:   provenanceSvc,
		Queue:        queueSvc,
		Notification: notificationSvc,
		Employee:     employeeSvc,
	}
}
