package notification

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	recipient := uuid.New()

	n := NewNotification(recipient, CategoryBarterProposed, "New barter offer", "alice offered Calculus I for your Physics II")

	require.NotNil(t, n)
	assert.NotEqual(t, uuid.Nil, n.NotificationID)
	assert.Equal(t, recipient, n.RecipientID)
	assert.Equal(t, CategoryBarterProposed, n.Category)
	assert.Equal(t, StatusPending, n.Status)
	assert.Equal(t, 3, n.MaxRetries)
	assert.Equal(t, 0, n.RetryCount)
	assert.False(t, n.Read)
	assert.False(t, n.CreatedAt.IsZero())
	assert.Nil(t, n.RelatedItemID)
	assert.Nil(t, n.ExpiresAt)
}

func TestNotification_SetRelated(t *testing.T) {
	n := NewNotification(uuid.New(), CategoryBarterAccepted, "Title", "Body")
	itemID := uuid.New()
	userID := uuid.New()

	n.SetRelated(&itemID, &userID)

	require.NotNil(t, n.RelatedItemID)
	require.NotNil(t, n.RelatedUserID)
	assert.Equal(t, itemID, *n.RelatedItemID)
	assert.Equal(t, userID, *n.RelatedUserID)
}

func TestNotification_Transitions(t *testing.T) {
	t.Run("pending to sent to delivered", func(t *testing.T) {
		n := NewNotification(uuid.New(), CategoryBarterProposed, "Title", "Body")

		require.NoError(t, n.MarkSent())
		assert.Equal(t, StatusSent, n.Status)
		require.NotNil(t, n.SentAt)

		require.NoError(t, n.MarkDelivered())
		assert.Equal(t, StatusDelivered, n.Status)
		require.NotNil(t, n.DeliveredAt)
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		n := NewNotification(uuid.New(), CategoryBarterProposed, "Title", "Body")
		require.NoError(t, n.MarkSent())
		require.NoError(t, n.MarkDelivered())

		assert.ErrorIs(t, n.MarkSent(), ErrInvalidTransition)
		assert.True(t, n.IsTerminal())
	})

	t.Run("failed can retry until max", func(t *testing.T) {
		n := NewNotification(uuid.New(), CategoryBarterProposed, "Title", "Body")
		for i := 0; i < 3; i++ {
			require.NoError(t, n.MarkFailed("sink down"))
			if i < 2 {
				require.True(t, n.CanRetry())
				require.NoError(t, n.ResetForRetry())
			}
		}
		assert.False(t, n.CanRetry())
		assert.ErrorIs(t, n.ResetForRetry(), ErrCannotRetry)
		assert.True(t, n.IsTerminal())
	})

	t.Run("failed notification past TTL can expire", func(t *testing.T) {
		n := NewNotification(uuid.New(), CategoryBarterProposed, "Title", "Body")
		n.SetExpiry(time.Now().UTC().Add(-time.Minute))
		require.NoError(t, n.MarkFailed("sink down"))

		require.NoError(t, n.MarkExpired())
		assert.Equal(t, StatusExpired, n.Status)
	})

	t.Run("expired notification cannot be sent", func(t *testing.T) {
		n := NewNotification(uuid.New(), CategoryBarterProposed, "Title", "Body")
		n.SetExpiry(time.Now().UTC().Add(-time.Minute))

		assert.ErrorIs(t, n.MarkSent(), ErrExpired)
		assert.Equal(t, StatusExpired, n.Status)
	})
}

func TestNotification_MarkRead(t *testing.T) {
	n := NewNotification(uuid.New(), CategoryBarterWithdrawn, "Title", "Body")
	n.MarkRead()

	assert.True(t, n.Read)
	require.NotNil(t, n.ReadAt)
	first := *n.ReadAt

	n.MarkRead()
	assert.Equal(t, first, *n.ReadAt)
}
