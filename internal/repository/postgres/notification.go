package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/google/uuid"
)

// NotificationRepository handles notification data access
type NotificationRepository struct {
	db *DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, message, user_id, invitation_id, farm_id, notification_type_id, notification_state_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	n.ID = uuid.New()
	n.CreatedAt = time.Now().UTC()

	_, err := r.db.conn(ctx).Exec(ctx, query,
		n.ID, n.Message, n.UserID, n.InvitationID, n.FarmID, n.TypeID, n.StateID, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListByUser returns the most recent notifications for a user
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	query := `
		SELECT id, message, user_id, invitation_id, farm_id, notification_type_id, notification_state_id, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.conn(ctx).Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.UserID, &n.InvitationID, &n.FarmID, &n.TypeID, &n.StateID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkRespondedByInvitation moves every notification tied to an invitation to the responded state
func (r *NotificationRepository) MarkRespondedByInvitation(ctx context.Context, invitationID uuid.UUID, respondedStateID int) error {
	query := `UPDATE notifications SET notification_state_id = $1 WHERE invitation_id = $2`

	_, err := r.db.conn(ctx).Exec(ctx, query, respondedStateID, invitationID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications responded: %w", err)
	}

	return nil
}
