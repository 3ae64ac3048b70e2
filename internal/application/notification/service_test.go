package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/prashana14/StudyReuse-sub000/internal/domain/apperrors"
	"github.com/prashana14/StudyReuse-sub000/internal/domain/notification"
	notificationMocks "github.com/prashana14/StudyReuse-sub000/internal/domain/notification/mocks"
)

func TestService_Emit(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()

	t.Run("persists and delivers via SSE", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := notificationMocks.NewMockRepository(ctrl)
		hub := notificationMocks.NewMockSSEHub(ctrl)
		service := NewService(repo, hub, zerolog.Nop())

		n := notification.NewNotification(recipientID, notification.CategoryBarterProposed, "New barter offer", "swap?")

		repo.EXPECT().Create(ctx, n).Return(nil)
		repo.EXPECT().GetByID(ctx, n.NotificationID).Return(n, nil)
		// Once for SENT, once for the final DELIVERED state.
		repo.EXPECT().Update(ctx, n).Return(nil).Times(2)
		hub.EXPECT().BroadcastToUser(recipientID.String(), gomock.Any())

		service.Emit(ctx, n)

		assert.Equal(t, notification.StatusDelivered, n.Status)
		require.NotNil(t, n.ExpiresAt)
	})

	t.Run("swallows persistence failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := notificationMocks.NewMockRepository(ctrl)
		hub := notificationMocks.NewMockSSEHub(ctrl)
		service := NewService(repo, hub, zerolog.Nop())

		n := notification.NewNotification(recipientID, notification.CategoryBarterAccepted, "t", "b")
		repo.EXPECT().Create(ctx, n).Return(errors.New("db down"))

		// No Send, no broadcast, and crucially no error to the caller.
		service.Emit(ctx, n)
		assert.Equal(t, notification.StatusPending, n.Status)
	})
}

func TestService_MarkRead(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()

	t.Run("recipient marks read once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := notificationMocks.NewMockRepository(ctrl)
		service := NewService(repo, notificationMocks.NewMockSSEHub(ctrl), zerolog.Nop())

		n := notification.NewNotification(recipientID, notification.CategoryBarterRejected, "t", "b")
		repo.EXPECT().GetByID(ctx, n.NotificationID).Return(n, nil)
		repo.EXPECT().Update(ctx, n).Return(nil)

		got, err := service.MarkRead(ctx, recipientID, n.NotificationID)
		require.NoError(t, err)
		assert.True(t, got.Read)

		// Second call is a no-op: no Update expected.
		repo.EXPECT().GetByID(ctx, n.NotificationID).Return(n, nil)
		_, err = service.MarkRead(ctx, recipientID, n.NotificationID)
		require.NoError(t, err)
	})

	t.Run("other users are rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := notificationMocks.NewMockRepository(ctrl)
		service := NewService(repo, notificationMocks.NewMockSSEHub(ctrl), zerolog.Nop())

		n := notification.NewNotification(recipientID, notification.CategoryBarterWithdrawn, "t", "b")
		repo.EXPECT().GetByID(ctx, n.NotificationID).Return(n, nil)

		_, err := service.MarkRead(ctx, uuid.New(), n.NotificationID)
		assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	})
}

func TestService_ProcessRetryableNotifications(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()

	t.Run("skips exhausted retries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := notificationMocks.NewMockRepository(ctrl)
		hub := notificationMocks.NewMockSSEHub(ctrl)
		service := NewService(repo, hub, zerolog.Nop())

		exhausted := notification.NewNotification(recipientID, notification.CategoryBarterProposed, "t", "b")
		exhausted.Status = notification.StatusFailed
		exhausted.RetryCount = exhausted.MaxRetries

		retryable := notification.NewNotification(recipientID, notification.CategoryBarterProposed, "t", "b")
		retryable.Status = notification.StatusFailed
		retryable.RetryCount = 1

		repo.EXPECT().ListByStatus(ctx, notification.StatusFailed, 10).
			Return([]*notification.Notification{exhausted, retryable}, nil)
		repo.EXPECT().Update(ctx, retryable).Return(nil)
		repo.EXPECT().GetByID(ctx, retryable.NotificationID).Return(retryable, nil)
		repo.EXPECT().Update(ctx, retryable).Return(nil).Times(2)
		hub.EXPECT().BroadcastToUser(recipientID.String(), gomock.Any())

		retried, err := service.ProcessRetryableNotifications(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, retried)
	})
}

func TestService_ExpireOverdueNotifications(t *testing.T) {
	ctx := context.Background()
	recipientID := uuid.New()

	t.Run("expires only rows past their TTL", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := notificationMocks.NewMockRepository(ctrl)
		service := NewService(repo, notificationMocks.NewMockSSEHub(ctrl), zerolog.Nop())

		overdue := notification.NewNotification(recipientID, notification.CategoryBarterProposed, "t", "b")
		overdue.SetExpiry(time.Now().Add(-time.Hour))

		fresh := notification.NewNotification(recipientID, notification.CategoryBarterProposed, "t", "b")
		fresh.SetExpiry(time.Now().Add(time.Hour))

		stuck := notification.NewNotification(recipientID, notification.CategoryBarterAccepted, "t", "b")
		stuck.Status = notification.StatusFailed
		stuck.SetExpiry(time.Now().Add(-time.Minute))

		repo.EXPECT().ListByStatus(ctx, notification.StatusPending, 10).
			Return([]*notification.Notification{overdue, fresh}, nil)
		repo.EXPECT().ListByStatus(ctx, notification.StatusFailed, 10).
			Return([]*notification.Notification{stuck}, nil)
		repo.EXPECT().Update(ctx, overdue).Return(nil)
		repo.EXPECT().Update(ctx, stuck).Return(nil)

		expired, err := service.ExpireOverdueNotifications(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, expired)
		assert.Equal(t, notification.StatusExpired, overdue.Status)
		assert.Equal(t, notification.StatusPending, fresh.Status)
		assert.Equal(t, notification.StatusExpired, stuck.Status)
	})
}
