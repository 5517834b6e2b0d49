package notification

import (
	"context"

	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// ListFilter narrows notification listings
type ListFilter struct {
	UnreadOnly bool
}

type Repository interface {
	// Create creates a new notification
	Create(ctx context.Context, notification *Notification) error

	// GetByID retrieves a notification by ID
	GetByID(ctx context.Context, id kernel.NotificationID) (*Notification, error)

	// ListByRecipient retrieves a user's notifications, newest first
	ListByRecipient(ctx context.Context, recipientID kernel.UserID, filter ListFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[Notification], error)

	// CountUnread counts a user's unread notifications
	CountUnread(ctx context.Context, recipientID kernel.UserID) (int64, error)

	// MarkRead flags one notification as read
	MarkRead(ctx context.Context, id kernel.NotificationID) error

	// MarkAllRead flags every notification of a user as read, returning how
	// many changed
	MarkAllRead(ctx context.Context, recipientID kernel.UserID) (int64, error)
}
