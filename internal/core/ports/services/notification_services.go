package services

import (
	"context"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

// NotificationSvcFacade converts workflow transitions into addressed,
// prioritized notification events. Emission is idempotent per
// (claim, toStage) and never fails a committed transition: sink errors are
// logged and swallowed.
type NotificationSvcFacade interface {
	// OnTransition emits the events for one stage transition and returns them.
	OnTransition(ctx context.Context, claim domain.Claim, fromStage domain.ClaimStage, toStage domain.ClaimStage, actorID string) []domain.NotificationEvent

	// OnHREdit emits the event for an HR field edit and returns it.
	OnHREdit(ctx context.Context, claim domain.Claim, changedFields []domain.FieldName, actorID string) []domain.NotificationEvent

	// ListForUser retrieves a user's notification feed, newest first.
	ListForUser(ctx context.Context, tenantID string, userID string, limit int) ([]domain.NotificationEvent, error)
}
