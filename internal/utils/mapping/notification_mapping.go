package mapping

import (
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	"github.com/veloexp/claim_approval_app/internal/models"
)

// ToModelNotification converts a domain NotificationEvent to a model row
func ToModelNotification(d domain.NotificationEvent) models.Notification {
	return models.Notification{
		EventID:      d.EventID,
		TenantID:     d.TenantID,
		TargetUserID: d.TargetUserID,
		Type:         string(d.Type),
		Priority:     string(d.Priority),
		Message:      d.Message,
		ActionRef:    d.ActionRef,
		ClaimID:      d.ClaimID,
		Stage:        string(d.Stage),
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainNotification converts a model row to a domain NotificationEvent
func ToDomainNotification(m models.Notification) domain.NotificationEvent {
	return domain.NotificationEvent{
		EventID:      m.EventID,
		TenantID:     m.TenantID,
		TargetUserID: m.TargetUserID,
		Type:         domain.NotificationType(m.Type),
		Priority:     domain.NotificationPriority(m.Priority),
		Message:      m.Message,
		ActionRef:    m.ActionRef,
		ClaimID:      m.ClaimID,
		Stage:        domain.ClaimStage(m.Stage),
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainNotificationSlice converts model rows to domain NotificationEvents
func ToDomainNotificationSlice(ms []models.Notification) []domain.NotificationEvent {
	ds := make([]domain.NotificationEvent, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainNotification(m)
	}
	return ds
}
