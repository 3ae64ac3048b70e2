package notification

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository,Emitter,SSEHub

import (
	"context"

	"github.com/google/uuid"
)

// Filter represents filters for querying notifications
type Filter struct {
	RecipientID *uuid.UUID
	Category    *Category
	Status      *Status
	Unread      *bool
}

// Repository defines persistence for notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	Update(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, notificationID uuid.UUID) (*Notification, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Notification, error)
	ListByStatus(ctx context.Context, status Status, limit int) ([]*Notification, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int, error)
}

// Emitter accepts notification intents. Implementations are fire-and-forget:
// delivery failures are logged, never surfaced to the caller.
type Emitter interface {
	Emit(ctx context.Context, n *Notification)
}

// SSEHub delivers messages to connected clients.
type SSEHub interface {
	BroadcastToAll(message *SSEMessage)
	BroadcastToUser(userID string, message *SSEMessage)
}
