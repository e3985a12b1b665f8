package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/veloexp/claim_approval_app/internal/apperrors"
	"github.com/veloexp/claim_approval_app/internal/core/domain"
	portsrepo "github.com/veloexp/claim_approval_app/internal/core/ports/repositories"
	"github.com/veloexp/claim_approval_app/internal/models"
	"github.com/veloexp/claim_approval_app/internal/utils/mapping"
)

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for notification events.
func newPgxNotificationRepository(pool PGXPool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepositoryFacade
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const notificationColumns = `event_id, tenant_id, target_user_id, type, priority, message,
	action_ref, claim_id, stage, created_at`

// SaveNotifications persists a batch of events.
func (r *PgxNotificationRepository) SaveNotifications(ctx context.Context, events []domain.NotificationEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, event := range events {
		m := mapping.ToModelNotification(event)
		batch.Queue(query,
			m.EventID,
			m.TenantID,
			m.TargetUserID,
			m.Type,
			m.Priority,
			m.Message,
			m.ActionRef,
			m.ClaimID,
			m.Stage,
			m.CreatedAt,
		)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert notification batch", err)
	}

	return r.Commit(ctx, tx)
}

// ListNotificationsForUser retrieves a user's notifications, newest first.
func (r *PgxNotificationRepository) ListNotificationsForUser(ctx context.Context, tenantID string, userID string, limit int) ([]domain.NotificationEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE tenant_id = $1 AND target_user_id = $2
		ORDER BY created_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, userID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query notifications for user "+userID, err)
	}
	defer rows.Close()

	events := []models.Notification{}
	for rows.Next() {
		var m models.Notification
		err := rows.Scan(
			&m.EventID,
			&m.TenantID,
			&m.TargetUserID,
			&m.Type,
			&m.Priority,
			&m.Message,
			&m.ActionRef,
			&m.ClaimID,
			&m.Stage,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan notification row", err)
		}
		events = append(events, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating notification rows", err)
	}

	return mapping.ToDomainNotificationSlice(events), nil
}
