package notificationsrv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ejeanjules/capstone-project/board/application"
	"github.com/Ejeanjules/capstone-project/board/application/applicationsrv"
	"github.com/Ejeanjules/capstone-project/board/notification"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

type fakeNotificationRepo struct {
	created []*notification.Notification
	read    map[kernel.NotificationID]bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{read: make(map[kernel.NotificationID]bool)}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) GetByID(ctx context.Context, id kernel.NotificationID) (*notification.Notification, error) {
	for _, n := range f.created {
		if n.ID == id {
			clone := *n
			clone.IsRead = clone.IsRead || f.read[id]
			return &clone, nil
		}
	}
	return nil, notification.ErrNotificationNotFound()
}

func (f *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID kernel.UserID, filter notification.ListFilter, pagination kernel.PaginationOptions) (*kernel.Paginated[notification.Notification], error) {
	var out []notification.Notification
	for _, n := range f.created {
		if n.RecipientID != recipientID {
			continue
		}
		if filter.UnreadOnly && (n.IsRead || f.read[n.ID]) {
			continue
		}
		out = append(out, *n)
	}
	return kernel.NewPaginated(out, pagination, len(out)), nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, recipientID kernel.UserID) (int64, error) {
	var count int64
	for _, n := range f.created {
		if n.RecipientID == recipientID && !n.IsRead && !f.read[n.ID] {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id kernel.NotificationID) error {
	f.read[id] = true
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID kernel.UserID) (int64, error) {
	var count int64
	for _, n := range f.created {
		if n.RecipientID == recipientID && !n.IsRead && !f.read[n.ID] {
			f.read[n.ID] = true
			count++
		}
	}
	return count, nil
}

func sampleEvent() applicationsrv.ApplicationEvent {
	return applicationsrv.ApplicationEvent{
		RecipientID:   kernel.GenerateUserID(),
		SenderID:      kernel.GenerateUserID(),
		JobID:         kernel.GenerateJobID(),
		ApplicationID: kernel.GenerateApplicationID(),
		JobTitle:      "Backend Developer",
		JobCompany:    "Acme",
		ApplicantName: "jdoe",
	}
}

func TestNotifyApplicationReceived(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewService(repo)

	event := sampleEvent()
	require.NoError(t, service.NotifyApplicationReceived(context.Background(), event))

	require.Len(t, repo.created, 1)
	n := repo.created[0]
	assert.Equal(t, notification.TypeNewApplication, n.Type)
	assert.Equal(t, event.RecipientID, n.RecipientID)
	assert.Equal(t, "New application for Backend Developer", n.Title)
	assert.Equal(t, "jdoe has applied to your job posting 'Backend Developer' at Acme.", n.Message)
	assert.False(t, n.IsRead)
}

func TestNotifyStatusChanged(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewService(repo)

	cases := []struct {
		status  application.Status
		title   string
		message string
	}{
		{
			status:  application.StatusAccepted,
			title:   "Application Accepted: Backend Developer",
			message: "Congratulations! Your application for 'Backend Developer' at Acme has been accepted.",
		},
		{
			status:  application.StatusRejected,
			title:   "Application Rejected: Backend Developer",
			message: "Thank you for your interest. Your application for 'Backend Developer' at Acme was not selected at this time.",
		},
		{
			status:  application.StatusPending,
			title:   "Application Pending: Backend Developer",
			message: "Your application for 'Backend Developer' at Acme is now under review.",
		},
	}

	for _, tc := range cases {
		event := sampleEvent()
		event.Status = tc.status
		require.NoError(t, service.NotifyStatusChanged(context.Background(), event))

		n := repo.created[len(repo.created)-1]
		assert.Equal(t, notification.TypeApplicationStatus, n.Type)
		assert.Equal(t, tc.title, n.Title)
		assert.Equal(t, tc.message, n.Message)
	}
}

func TestMarkReadChecksRecipient(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewService(repo)

	event := sampleEvent()
	require.NoError(t, service.NotifyApplicationReceived(context.Background(), event))
	id := repo.created[0].ID

	_, err := service.MarkRead(context.Background(), kernel.GenerateUserID(), id)
	assert.Error(t, err)

	n, err := service.MarkRead(context.Background(), event.RecipientID, id)
	require.NoError(t, err)
	assert.True(t, n.IsRead)

	count, err := service.UnreadCount(context.Background(), event.RecipientID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkAllRead(t *testing.T) {
	repo := newFakeNotificationRepo()
	service := NewService(repo)

	event := sampleEvent()
	require.NoError(t, service.NotifyApplicationReceived(context.Background(), event))

	second := sampleEvent()
	second.RecipientID = event.RecipientID
	require.NoError(t, service.NotifyApplicationReceived(context.Background(), second))

	count, err := service.MarkAllRead(context.Background(), event.RecipientID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	unread, err := service.UnreadCount(context.Background(), event.RecipientID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
