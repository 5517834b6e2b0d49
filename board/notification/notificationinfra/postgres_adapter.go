package notificationinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Ejeanjules/capstone-project/board/notification"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// PostgresNotificationRepository implements notification.Repository using PostgreSQL
type PostgresNotificationRepository struct {
	db *sqlx.DB
}

// NewPostgresNotificationRepository creates a new PostgreSQL notification repository
func NewPostgresNotificationRepository(db *sqlx.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type notificationModel struct {
	ID            string         `db:"id"`
	RecipientID   string         `db:"recipient_id"`
	SenderID      sql.NullString `db:"sender_id"`
	Type          string         `db:"notification_type"`
	Title         string         `db:"title"`
	Message       string         `db:"message"`
	JobID         sql.NullString `db:"job_id"`
	ApplicationID sql.NullString `db:"application_id"`
	IsRead        bool           `db:"is_read"`
	CreatedAt     time.Time      `db:"created_at"`
}

// toEntity converts database model to domain entity
func (m *notificationModel) toEntity() *notification.Notification {
	return &notification.Notification{
		ID:            kernel.NotificationID(m.ID),
		RecipientID:   kernel.UserID(m.RecipientID),
		SenderID:      kernel.UserID(m.SenderID.String),
		Type:          notification.Type(m.Type),
		Title:         m.Title,
		Message:       m.Message,
		JobID:         kernel.JobID(m.JobID.String),
		ApplicationID: kernel.ApplicationID(m.ApplicationID.String),
		IsRead:        m.IsRead,
		CreatedAt:     m.CreatedAt,
	}
}

// fromEntity converts domain entity to database model
func fromEntity(n *notification.Notification) *notificationModel {
	return &notificationModel{
		ID:            string(n.ID),
		RecipientID:   string(n.RecipientID),
		SenderID:      nullable(string(n.SenderID)),
		Type:          string(n.Type),
		Title:         n.Title,
		Message:       n.Message,
		JobID:         nullable(string(n.JobID)),
		ApplicationID: nullable(string(n.ApplicationID)),
		IsRead:        n.IsRead,
		CreatedAt:     n.CreatedAt,
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ============================================================================
// Repository Implementation
// ============================================================================

const notificationColumns = `
	id, recipient_id, sender_id, notification_type, title, message,
	job_id, application_id, is_read, created_at
`

// Create creates a new notification
func (r *PostgresNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model := fromEntity(n)

	query := `
		INSERT INTO notifications (
			id, recipient_id, sender_id, notification_type, title, message,
			job_id, application_id, is_read, created_at
		) VALUES (
			:id, :recipient_id, :sender_id, :notification_type, :title, :message,
			:job_id, :application_id, :is_read, :created_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("invalid foreign key reference: %w", err)
		}
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// GetByID retrieves a notification by ID
func (r *PostgresNotificationRepository) GetByID(ctx context.Context, id kernel.NotificationID) (*notification.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	var model notificationModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, notification.ErrNotificationNotFound()
		}
		return nil, fmt.Errorf("failed to get notification by id: %w", err)
	}

	return model.toEntity(), nil
}

// ListByRecipient retrieves a user's notifications, newest first
func (r *PostgresNotificationRepository) ListByRecipient(ctx context.Context, recipientID kernel.UserID, filter notification.ListFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[notification.Notification], error) {
	where := `WHERE recipient_id = $1`
	if filter.UnreadOnly {
		where += ` AND is_read = FALSE`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM notifications ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, string(recipientID)); err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT ` + notificationColumns + ` FROM notifications ` + where + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var models []notificationModel
	err := r.db.SelectContext(ctx, &models, query, string(recipientID), pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	entities := make([]notification.Notification, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return kernel.NewPaginated(entities, pagination, total), nil
}

// CountUnread counts a user's unread notifications
func (r *PostgresNotificationRepository) CountUnread(ctx context.Context, recipientID kernel.UserID) (int64, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`

	var count int64
	err := r.db.GetContext(ctx, &count, query, string(recipientID))
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead flags one notification as read
func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id kernel.NotificationID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return notification.ErrNotificationNotFound()
	}

	return nil
}

// MarkAllRead flags every notification of a user as read
func (r *PostgresNotificationRepository) MarkAllRead(ctx context.Context, recipientID kernel.UserID) (int64, error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE`

	result, err := r.db.ExecContext(ctx, query, string(recipientID))
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}
