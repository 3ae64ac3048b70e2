package barter

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prashana14/StudyReuse-sub000/internal/domain/item"
	"github.com/prashana14/StudyReuse-sub000/internal/domain/user"
)

// Status represents the negotiation status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// BarterRequest represents a proposal to trade offerItem for item.
type BarterRequest struct {
	ID              int64     `json:"id"`
	BarterID        uuid.UUID `json:"barterId"`
	ItemID          uuid.UUID `json:"itemId"`
	OfferItemID     uuid.UUID `json:"offerItemId"`
	RequesterID     uuid.UUID `json:"requesterId"`
	OwnerID         uuid.UUID `json:"ownerId"`
	Status          Status    `json:"status"`
	Message         string    `json:"message"`
	RejectionReason *string   `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Expanded for display; populated by queries, never persisted.
	Item      *item.Item `json:"item,omitempty"`
	OfferItem *item.Item `json:"offerItem,omitempty"`
	Requester *user.User `json:"requester,omitempty"`
	Owner     *user.User `json:"owner,omitempty"`
}

// NewBarterRequest creates a pending proposal.
func NewBarterRequest(itemID, offerItemID, requesterID, ownerID uuid.UUID, message string) *BarterRequest {
	now := time.Now().UTC()
	return &BarterRequest{
		BarterID:    uuid.New(),
		ItemID:      itemID,
		OfferItemID: offerItemID,
		RequesterID: requesterID,
		OwnerID:     ownerID,
		Status:      StatusPending,
		Message:     message,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsParticipant reports whether userID is the requester or the owner.
func (b *BarterRequest) IsParticipant(userID uuid.UUID) bool {
	return b.RequesterID == userID || b.OwnerID == userID
}

// transitions is the single transition table shared by the dedicated
// accept/reject paths and the generic update path. ACCEPTED -> REJECTED
// is the reversal edge; only the generic path takes it.
var transitions = map[Status][]Status{
	StatusPending:   {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted:  {StatusRejected},
	StatusRejected:  {},
	StatusCancelled: {},
}

// CanTransitionTo checks if a transition to the target status is valid.
func (b *BarterRequest) CanTransitionTo(target Status) bool {
	allowed, ok := transitions[b.Status]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

func ValidateStatus(status Status) bool {
	switch NormalizeStatus(status) {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// NormalizeStatus upper-cases a caller-supplied status string.
func NormalizeStatus(status Status) Status {
	return Status(strings.ToUpper(string(status)))
}

// StateTransition records one status change for reconciliation and audit.
type StateTransition struct {
	ID             int64     `json:"id"`
	BarterID       uuid.UUID `json:"barterId"`
	FromStatus     Status    `json:"fromStatus"`
	ToStatus       Status    `json:"toStatus"`
	Actor          string    `json:"actor"`
	Reason         *string   `json:"reason,omitempty"`
	TransitionedAt time.Time `json:"transitionedAt"`
}
