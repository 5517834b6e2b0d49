package notification

import (
	"time"

	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// Type categorizes what a notification is about
type Type string

const (
	TypeNewApplication    Type = "new_application"
	TypeApplicationStatus Type = "application_status"
	TypeJobPosted         Type = "job_posted"
)

// IsValid checks that the type is one of the accepted values
func (t Type) IsValid() bool {
	switch t {
	case TypeNewApplication, TypeApplicationStatus, TypeJobPosted:
		return true
	}
	return false
}

type Notification struct {
	ID            kernel.NotificationID `db:"id" json:"id"`
	RecipientID   kernel.UserID         `db:"recipient_id" json:"recipient_id"`
	SenderID      kernel.UserID         `db:"sender_id" json:"sender_id,omitempty"`
	Type          Type                  `db:"notification_type" json:"notification_type"`
	Title         string                `db:"title" json:"title"`
	Message       string                `db:"message" json:"message"`
	JobID         kernel.JobID          `db:"job_id" json:"job_id,omitempty"`
	ApplicationID kernel.ApplicationID  `db:"application_id" json:"application_id,omitempty"`
	IsRead        bool                  `db:"is_read" json:"is_read"`
	CreatedAt     time.Time             `db:"created_at" json:"created_at"`
}

// IsForRecipient checks whether the user owns this notification
func (n *Notification) IsForRecipient(userID kernel.UserID) bool {
	return n.RecipientID == userID
}

// MarkRead flags the notification as read
func (n *Notification) MarkRead() {
	n.IsRead = true
}
