package barter

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/prashana14/StudyReuse-sub000/internal/domain/item"
)

// Filter controls barter listing.
type Filter struct {
	Status      *Status
	ItemID      *uuid.UUID
	RequesterID *uuid.UUID
	OwnerID     *uuid.UUID
}

// Repository defines persistence for barter requests. Write methods are
// transaction-aware: inside WithTx they run on the enclosing transaction.
type Repository interface {
	Create(ctx context.Context, b *BarterRequest) error
	Update(ctx context.Context, b *BarterRequest) error
	Delete(ctx context.Context, barterID uuid.UUID) error
	GetByID(ctx context.Context, barterID uuid.UUID) (*BarterRequest, error)
	// ListByParticipant returns records where userID is requester or owner,
	// newest first, with items and parties expanded.
	ListByParticipant(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*BarterRequest, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]*BarterRequest, error)
	ExistsPending(ctx context.Context, itemID, offerItemID, requesterID uuid.UUID) (bool, error)
	RecordTransition(ctx context.Context, transition *StateTransition) error

	// WithTx runs fn inside a single transaction; the ctx passed to fn
	// carries the transaction for this repository's methods.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// GetItemForUpdate reads an item row locked for the enclosing transaction.
	GetItemForUpdate(ctx context.Context, itemID uuid.UUID) (*item.Item, error)
	// UpdateItemStatus writes an item status on the enclosing transaction.
	UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status item.Status) error
}
