package item

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents item availability.
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusReserved    Status = "RESERVED"
	StatusSold        Status = "SOLD"
	StatusUnavailable Status = "UNAVAILABLE"
)

// Condition describes the physical condition of a listed item.
type Condition string

const (
	ConditionNew      Condition = "NEW"
	ConditionLikeNew  Condition = "LIKE_NEW"
	ConditionUsed     Condition = "USED"
	ConditionWellWorn Condition = "WELL_WORN"
)

// Item represents a study material listed for exchange or sale.
type Item struct {
	ID          int64     `json:"id"`
	ItemID      uuid.UUID `json:"itemId"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Condition   Condition `json:"condition"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewItem creates a listed item owned by ownerID.
func NewItem(ownerID uuid.UUID, title, description, category string, condition Condition) *Item {
	now := time.Now().UTC()
	return &Item{
		ItemID:      uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Category:    category,
		Condition:   condition,
		Status:      StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsAvailable matches the catalog's available marker case-insensitively.
func (i *Item) IsAvailable() bool {
	return strings.EqualFold(string(i.Status), string(StatusAvailable))
}

func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.OwnerID == userID
}

func ValidateCondition(condition Condition) bool {
	switch condition {
	case ConditionNew, ConditionLikeNew, ConditionUsed, ConditionWellWorn:
		return true
	default:
		return false
	}
}

func ValidateStatus(status Status) bool {
	switch NormalizeStatus(status) {
	case StatusAvailable, StatusReserved, StatusSold, StatusUnavailable:
		return true
	default:
		return false
	}
}

// NormalizeStatus upper-cases a caller-supplied status string.
func NormalizeStatus(status Status) Status {
	return Status(strings.ToUpper(string(status)))
}
