package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
	portssvc "github.com/veloexp/claim_approval_app/internal/core/ports/services"
	"github.com/veloexp/claim_approval_app/internal/middleware"
)

// notificationService converts workflow transitions into addressed events.
// It hands events to the notification repository (the external dispatcher's
// queue) and never lets a sink failure surface into the transition result.
type notificationService struct {
	employeeRepo     portsrepo.EmployeeReader
	notificationRepo portsrepo.NotificationRepositoryFacade

	// seen tracks delivered (fromStage -> toStage) edges per claim so an
	// accidental re-delivery of the same transition emits nothing. Edges
	// are scoped to one submission cycle, keyed by the claim's SubmittedAt:
	// a resubmission stamps a new timestamp and legally revisits the same
	// pending stages, while a re-delivered submit carries the old one.
	mu   sync.Mutex
	seen map[string]*deliveryRecord
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(employeeRepo portsrepo.EmployeeReader, notificationRepo portsrepo.NotificationRepositoryFacade) portssvc.NotificationSvcFacade {
	return &notificationService{
		employeeRepo:     employeeRepo,
		notificationRepo: notificationRepo,
		seen:             make(map[string]*deliveryRecord),
	}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// OnTransition emits the events for one stage transition. Entering a pending
// stage fans out to every tenant user holding the matching role; terminal
// and returned stages notify the submitting employee.
func (s *notificationService) OnTransition(ctx context.Context, claim domain.Claim, fromStage domain.ClaimStage, toStage domain.ClaimStage, actorID string) []domain.NotificationEvent {
	if !s.markDelivered(claim, fromStage, toStage) {
		return nil
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	var events []domain.NotificationEvent
	switch {
	case toStage.IsPending():
		role, _ := domain.RoleForStage(toStage)
		approvers, err := s.employeeRepo.ListEmployeesByRole(ctx, claim.TenantID, role)
		if err != nil {
			logger.Warn("Failed to list approvers for notification fan-out",
				slog.String("claim_id", claim.ClaimID),
				slog.String("role", string(role)),
				slog.String("error", err.Error()))
			break
		}
		for _, approver := range approvers {
			events = append(events, s.newEvent(claim, approver.EmployeeID, domain.NotifyPendingApproval, domain.PriorityHigh,
				fmt.Sprintf("Claim %s is awaiting your approval", claim.ClaimNumber), toStage, now))
		}
	case toStage == domain.StageFinanceApproved:
		events = append(events, s.newEvent(claim, claim.EmployeeID, domain.NotifyClaimApproved, domain.PriorityMedium,
			fmt.Sprintf("Claim %s has been fully approved", claim.ClaimNumber), toStage, now))
	case toStage == domain.StageRejected:
		events = append(events, s.newEvent(claim, claim.EmployeeID, domain.NotifyClaimRejected, domain.PriorityHigh,
			fmt.Sprintf("Claim %s was rejected", claim.ClaimNumber), toStage, now))
	case toStage == domain.StageReturnedToEmployee:
		events = append(events, s.newEvent(claim, claim.EmployeeID, domain.NotifyClaimReturned, domain.PriorityHigh,
			fmt.Sprintf("Claim %s was returned for changes", claim.ClaimNumber), toStage, now))
	case toStage == domain.StageSettled:
		events = append(events, s.newEvent(claim, claim.EmployeeID, domain.NotifyClaimSettled, domain.PriorityLow,
			fmt.Sprintf("Claim %s has been settled", claim.ClaimNumber), toStage, now))
	}

	s.persist(ctx, claim.ClaimID, events)
	return events
}

// OnHREdit emits one informational event to the submitting employee naming
// the edited fields.
func (s *notificationService) OnHREdit(ctx context.Context, claim domain.Claim, changedFields []domain.FieldName, actorID string) []domain.NotificationEvent {
	if len(changedFields) == 0 {
		return nil
	}
	names := make([]string, len(changedFields))
	for i, f := range changedFields {
		names[i] = string(f)
	}

	event := s.newEvent(claim, claim.EmployeeID, domain.NotifyClaimEdited, domain.PriorityMedium,
		fmt.Sprintf("HR updated claim %s fields: %s", claim.ClaimNumber, strings.Join(names, ", ")), claim.Stage, time.Now().UTC())

	events := []domain.NotificationEvent{event}
	s.persist(ctx, claim.ClaimID, events)
	return events
}

// ListForUser retrieves a user's notification feed, newest first.
func (s *notificationService) ListForUser(ctx context.Context, tenantID string, userID string, limit int) ([]domain.NotificationEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.notificationRepo.ListNotificationsForUser(ctx, tenantID, userID, limit)
}

// deliveryRecord holds the edges delivered during one submission cycle.
type deliveryRecord struct {
	cycle time.Time
	edges map[string]struct{}
}

// markDelivered records the transition edge and reports whether it is new
// within the claim's current submission cycle. A new SubmittedAt opens a
// fresh cycle; a re-delivered edge from the same cycle is a duplicate.
func (s *notificationService) markDelivered(claim domain.Claim, fromStage domain.ClaimStage, toStage domain.ClaimStage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cycle time.Time
	if claim.SubmittedAt != nil {
		cycle = *claim.SubmittedAt
	}

	record, ok := s.seen[claim.ClaimID]
	if !ok || !record.cycle.Equal(cycle) {
		record = &deliveryRecord{cycle: cycle, edges: make(map[string]struct{})}
		s.seen[claim.ClaimID] = record
	}

	key := string(fromStage) + ">" + string(toStage)
	if _, dup := record.edges[key]; dup {
		return false
	}
	record.edges[key] = struct{}{}

	// Terminal stages end the claim's lifecycle; drop its tracking state.
	if toStage.IsTerminal() {
		delete(s.seen, claim.ClaimID)
	}
	return true
}

func (s *notificationService) newEvent(claim domain.Claim, targetUserID string, typ domain.NotificationType, priority domain.NotificationPriority, message string, stage domain.ClaimStage, at time.Time) domain.NotificationEvent {
	return domain.NotificationEvent{
		EventID:      uuid.NewString(),
		TenantID:     claim.TenantID,
		TargetUserID: targetUserID,
		Type:         typ,
		Priority:     priority,
		Message:      message,
		ActionRef:    claim.ClaimID,
		ClaimID:      claim.ClaimID,
		Stage:        stage,
		CreatedAt:    at,
	}
}

// persist hands events to the sink. Failures are logged, never propagated:
// a committed transition stays committed even when its notifications fail,
// and retrying delivery is the external dispatcher's job.
func (s *notificationService) persist(ctx context.Context, claimID string, events []domain.NotificationEvent) {
	if len(events) == 0 {
		return
	}
	if err := s.notificationRepo.SaveNotifications(ctx, events); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to persist notification events",
			slog.String("claim_id", claimID),
			slog.Int("event_count", len(events)),
			slog.String("error", err.Error()))
	}
}
