package repositories

import (
	"context"

	"github.com/veloexp/claim_approval_app/internal/core/domain"
)

// NotificationWriter persists notification events for the external dispatcher
// to pick up. The engine treats this as a fire-and-forget sink.
type NotificationWriter interface {
	// SaveNotifications persists a batch of events.
	SaveNotifications(ctx context.Context, events []domain.NotificationEvent) error
}

// NotificationReader defines read operations for a user's notification feed
type NotificationReader interface {
	// ListNotificationsForUser retrieves a user's notifications, newest first.
	ListNotificationsForUser(ctx context.Context, tenantID string, userID string, limit int) ([]domain.NotificationEvent, error)
}

// NotificationRepositoryFacade combines all notification repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
