package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bookhub/internal/models"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.NotificationID == "" {
		notification.NotificationID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()

	query := `
		INSERT INTO notifications (notification_id, recipient_id, actor_id, verb,
			target_type, target_id, is_read, created_at)
		VALUES (:notification_id, :recipient_id, :actor_id, :verb,
			:target_type, :target_id, :is_read, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, notification)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) ListByRecipientID(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	var notifications []models.Notification

	query := `
		SELECT * FROM notifications
		WHERE recipient_id = $1
		AND ($2 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	err := r.db.SelectContext(ctx, &notifications, query, recipientID, unreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead flips the unread flag; scoped by recipient so a user cannot
// mark someone else's notification.
func (r *notificationRepository) MarkRead(ctx context.Context, notificationID, recipientID string) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE notification_id = $1 AND recipient_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, notificationID, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, ErrNotFound)
	}

	return nil
}
