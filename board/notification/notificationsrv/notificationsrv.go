package notificationsrv

import (
	"context"
	"fmt"
	"time"

	"github.com/Ejeanjules/capstone-project/board/application"
	"github.com/Ejeanjules/capstone-project/board/application/applicationsrv"
	"github.com/Ejeanjules/capstone-project/board/notification"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// Service implements notification business logic
type Service struct {
	repo notification.Repository
}

// NewService creates a new notification service
func NewService(repo notification.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// NotifyApplicationReceived tells a job owner someone applied
func (s *Service) NotifyApplicationReceived(ctx context.Context, event applicationsrv.ApplicationEvent) error {
	n := &notification.Notification{
		ID:            kernel.GenerateNotificationID(),
		RecipientID:   event.RecipientID,
		SenderID:      event.SenderID,
		Type:          notification.TypeNewApplication,
		Title:         fmt.Sprintf("New application for %s", event.JobTitle),
		Message:       fmt.Sprintf("%s has applied to your job posting '%s' at %s.", event.ApplicantName, event.JobTitle, event.JobCompany),
		JobID:         event.JobID,
		ApplicationID: event.ApplicationID,
		CreatedAt:     time.Now(),
	}
	return s.repo.Create(ctx, n)
}

// NotifyStatusChanged tells an applicant their application moved
func (s *Service) NotifyStatusChanged(ctx context.Context, event applicationsrv.ApplicationEvent) error {
	n := &notification.Notification{
		ID:            kernel.GenerateNotificationID(),
		RecipientID:   event.RecipientID,
		SenderID:      event.SenderID,
		Type:          notification.TypeApplicationStatus,
		Title:         fmt.Sprintf("Application %s: %s", capitalize(string(event.Status)), event.JobTitle),
		Message:       statusMessage(event),
		JobID:         event.JobID,
		ApplicationID: event.ApplicationID,
		CreatedAt:     time.Now(),
	}
	return s.repo.Create(ctx, n)
}

func statusMessage(event applicationsrv.ApplicationEvent) string {
	switch event.Status {
	case application.StatusAccepted:
		return fmt.Sprintf("Congratulations! Your application for '%s' at %s has been accepted.", event.JobTitle, event.JobCompany)
	case application.StatusRejected:
		return fmt.Sprintf("Thank you for your interest. Your application for '%s' at %s was not selected at this time.", event.JobTitle, event.JobCompany)
	case application.StatusPending:
		return fmt.Sprintf("Your application for '%s' at %s is now under review.", event.JobTitle, event.JobCompany)
	}
	return fmt.Sprintf("Your application status for '%s' has been updated to %s.", event.JobTitle, event.Status)
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// List returns the caller's notifications, newest first
func (s *Service) List(ctx context.Context, userID kernel.UserID, filter notification.ListFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[notification.Notification], error) {
	return s.repo.ListByRecipient(ctx, userID, filter, pagination.Normalize())
}

// UnreadCount returns how many unread notifications the caller has
func (s *Service) UnreadCount(ctx context.Context, userID kernel.UserID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead flags one of the caller's notifications as read
func (s *Service) MarkRead(ctx context.Context, userID kernel.UserID, id kernel.NotificationID) (*notification.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !n.IsForRecipient(userID) {
		return nil, notification.ErrNotRecipient()
	}

	if !n.IsRead {
		if err := s.repo.MarkRead(ctx, id); err != nil {
			return nil, err
		}
		n.MarkRead()
	}

	return n, nil
}

// MarkAllRead flags every notification of the caller as read
func (s *Service) MarkAllRead(ctx context.Context, userID kernel.UserID) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
