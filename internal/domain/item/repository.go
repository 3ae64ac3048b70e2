package item

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"

	"github.com/google/uuid"
)

// Filter controls item listing.
type Filter struct {
	OwnerID  *uuid.UUID
	Status   *Status
	Category *string
}

// Repository defines persistence for items.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, itemID uuid.UUID) (*Item, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Item, error)
	// UpdateStatusFrom sets status only if the current status equals from.
	// Returns false when the row was not in the expected state.
	UpdateStatusFrom(ctx context.Context, itemID uuid.UUID, from, to Status) (bool, error)
}
