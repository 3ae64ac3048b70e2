package barter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prashana14/StudyReuse-sub000/internal/domain/apperrors"
	domainBarter "github.com/prashana14/StudyReuse-sub000/internal/domain/barter"
	domainItem "github.com/prashana14/StudyReuse-sub000/internal/domain/item"
	"github.com/prashana14/StudyReuse-sub000/internal/domain/notification"
	domainUser "github.com/prashana14/StudyReuse-sub000/internal/domain/user"
)

// Actor describes the authenticated caller.
type Actor struct {
	UserID   uuid.UUID
	Username string
	Role     domainUser.Role
}

func (a Actor) ActorString() string {
	return "user:" + a.Username
}

// Service implements the barter negotiation lifecycle.
type Service struct {
	barterRepo domainBarter.Repository
	itemRepo   domainItem.Repository
	userRepo   domainUser.Repository
	emitter    notification.Emitter
	logger     zerolog.Logger
}

// NewService creates a barter service.
func NewService(
	barterRepo domainBarter.Repository,
	itemRepo domainItem.Repository,
	userRepo domainUser.Repository,
	emitter notification.Emitter,
	logger zerolog.Logger,
) *Service {
	return &Service{
		barterRepo: barterRepo,
		itemRepo:   itemRepo,
		userRepo:   userRepo,
		emitter:    emitter,
		logger:     logger.With().Str("service", "barter").Logger(),
	}
}

// Propose creates a pending barter request offering offerItemID for itemID.
// Items are not reserved at this stage; the target stays open to competing
// offers until the owner accepts one.
func (s *Service) Propose(ctx context.Context, actor Actor, itemID, offerItemID uuid.UUID, message string) (*domainBarter.BarterRequest, error) {
	target, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperrors.NotFound("item not found: %s", itemID)
	}
	offered, err := s.itemRepo.GetByID(ctx, offerItemID)
	if err != nil {
		return nil, err
	}
	if offered == nil {
		return nil, apperrors.NotFound("offer item not found: %s", offerItemID)
	}
	if !offered.IsOwnedBy(actor.UserID) {
		return nil, apperrors.Forbidden("offer item does not belong to you")
	}
	if target.IsOwnedBy(actor.UserID) {
		return nil, apperrors.InvalidOperation("cannot barter with your own item")
	}
	if !offered.IsAvailable() {
		return nil, apperrors.Conflict("offer item is not available (status %s)", offered.Status)
	}
	if !target.IsAvailable() {
		return nil, apperrors.Conflict("target item is not available (status %s)", target.Status)
	}
	exists, err := s.barterRepo.ExistsPending(ctx, itemID, offerItemID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("a pending request for this item pair already exists")
	}

	if message == "" {
		message = fmt.Sprintf("Exchange %q for %q", offered.Title, target.Title)
	}
	b := domainBarter.NewBarterRequest(itemID, offerItemID, actor.UserID, target.OwnerID, message)
	if err := s.barterRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.expand(ctx, b, target, offered)
	s.logger.Info().
		Str("barter_id", b.BarterID.String()).
		Str("item_id", itemID.String()).
		Str("offer_item_id", offerItemID.String()).
		Str("actor", actor.ActorString()).
		Msg("barter proposed")

	n := notification.NewNotification(
		target.OwnerID,
		notification.CategoryBarterProposed,
		"New barter offer",
		fmt.Sprintf("%s offered %q for your %q", actor.Username, offered.Title, target.Title),
	)
	n.SetRelated(&b.ItemID, &b.RequesterID)
	n.SetLink("/barters/" + b.BarterID.String())
	s.emitter.Emit(ctx, n)

	return b, nil
}

// Accept reserves both items and marks the request accepted. The three
// writes run in one transaction; both items are re-read under row lock and
// must still be available, so a racing accept on an overlapping item pair
// fails with a conflict instead of double-reserving.
func (s *Service) Accept(ctx context.Context, actor Actor, barterID uuid.UUID) (*domainBarter.BarterRequest, error) {
	b, err := s.barterRepo.GetByID(ctx, barterID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperrors.NotFound("barter request not found: %s", barterID)
	}
	if b.OwnerID != actor.UserID {
		return nil, apperrors.Forbidden("only the item owner may accept this request")
	}
	if b.Status != domainBarter.StatusPending {
		return nil, apperrors.Conflict("cannot accept request in status %s", b.Status)
	}

	if err := s.reserveAndAccept(ctx, b, actor); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("barter_id", b.BarterID.String()).
		Str("actor", actor.ActorString()).
		Msg("barter accepted")

	n := notification.NewNotification(
		b.RequesterID,
		notification.CategoryBarterAccepted,
		"Barter offer accepted",
		fmt.Sprintf("%s accepted your barter offer", actor.Username),
	)
	n.SetRelated(&b.ItemID, &b.OwnerID)
	n.SetLink("/barters/" + b.BarterID.String())
	s.emitter.Emit(ctx, n)

	return b, nil
}

// Reject declines a pending request. Items are never touched: nothing was
// reserved for a merely-pending request.
func (s *Service) Reject(ctx context.Context, actor Actor, barterID uuid.UUID, reason string) (*domainBarter.BarterRequest, error) {
	b, err := s.barterRepo.GetByID(ctx, barterID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperrors.NotFound("barter request not found: %s", barterID)
	}
	if b.OwnerID != actor.UserID {
		return nil, apperrors.Forbidden("only the item owner may reject this request")
	}
	if b.Status != domainBarter.StatusPending {
		return nil, apperrors.Conflict("cannot reject request in status %s", b.Status)
	}

	prev := b.Status
	b.Status = domainBarter.StatusRejected
	if reason != "" {
		b.RejectionReason = &reason
	}
	b.UpdatedAt = time.Now().UTC()
	if err := s.barterRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	s.recordTransition(ctx, b, prev, actor, b.RejectionReason)

	body := fmt.Sprintf("%s declined your barter offer", actor.Username)
	if reason != "" {
		body += ": " + reason
	}
	n := notification.NewNotification(b.RequesterID, notification.CategoryBarterRejected, "Barter offer declined", body)
	n.SetRelated(&b.ItemID, &b.OwnerID)
	n.SetLink("/barters/" + b.BarterID.String())
	s.emitter.Emit(ctx, n)

	return b, nil
}

// UpdateStatus is the generic transition entry point. It shares the
// transition table with Accept/Reject and additionally permits the
// ACCEPTED -> REJECTED reversal, which reverts any item this negotiation
// still holds reserved. Reservation happens only on PENDING -> ACCEPTED.
func (s *Service) UpdateStatus(ctx context.Context, actor Actor, barterID uuid.UUID, target domainBarter.Status) (*domainBarter.BarterRequest, error) {
	target = domainBarter.NormalizeStatus(target)
	switch target {
	case domainBarter.StatusPending, domainBarter.StatusAccepted, domainBarter.StatusRejected:
	default:
		return nil, apperrors.InvalidOperation("unsupported target status: %s", target)
	}

	b, err := s.barterRepo.GetByID(ctx, barterID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperrors.NotFound("barter request not found: %s", barterID)
	}
	if b.OwnerID != actor.UserID {
		return nil, apperrors.Forbidden("only the item owner may update this request")
	}
	if !b.CanTransitionTo(target) {
		return nil, apperrors.Conflict("cannot transition from %s to %s", b.Status, target)
	}

	switch {
	case target == domainBarter.StatusAccepted:
		// Only PENDING -> ACCEPTED reaches here; reserve as Accept does.
		if err := s.reserveAndAccept(ctx, b, actor); err != nil {
			return nil, err
		}
	case target == domainBarter.StatusRejected && b.Status == domainBarter.StatusAccepted:
		if err := s.revertAndReject(ctx, b, actor); err != nil {
			return nil, err
		}
	default:
		prev := b.Status
		b.Status = target
		b.UpdatedAt = time.Now().UTC()
		if err := s.barterRepo.Update(ctx, b); err != nil {
			return nil, err
		}
		s.recordTransition(ctx, b, prev, actor, nil)
	}

	s.logger.Info().
		Str("barter_id", b.BarterID.String()).
		Str("status", string(b.Status)).
		Str("actor", actor.ActorString()).
		Msg("barter status updated")

	category := notification.CategoryBarterAccepted
	title := "Barter offer accepted"
	body := fmt.Sprintf("%s accepted your barter offer", actor.Username)
	if b.Status == domainBarter.StatusRejected {
		category = notification.CategoryBarterRejected
		title = "Barter offer declined"
		body = fmt.Sprintf("%s declined your barter offer", actor.Username)
	}
	n := notification.NewNotification(b.RequesterID, category, title, body)
	n.SetRelated(&b.ItemID, &b.OwnerID)
	n.SetLink("/barters/" + b.BarterID.String())
	s.emitter.Emit(ctx, n)

	return b, nil
}

// Cancel deletes a pending request. Callable by either participant.
func (s *Service) Cancel(ctx context.Context, actor Actor, barterID uuid.UUID) error {
	return s.remove(ctx, actor, barterID, false)
}

// Withdraw deletes a pending request; the requester-initiated variant.
func (s *Service) Withdraw(ctx context.Context, actor Actor, barterID uuid.UUID) error {
	return s.remove(ctx, actor, barterID, true)
}

func (s *Service) remove(ctx context.Context, actor Actor, barterID uuid.UUID, requesterOnly bool) error {
	b, err := s.barterRepo.GetByID(ctx, barterID)
	if err != nil {
		return err
	}
	if b == nil {
		return apperrors.NotFound("barter request not found: %s", barterID)
	}
	if requesterOnly {
		if b.RequesterID != actor.UserID {
			return apperrors.Forbidden("only the requester may withdraw this request")
		}
	} else if !b.IsParticipant(actor.UserID) {
		return apperrors.Forbidden("not a participant of this request")
	}
	if b.Status != domainBarter.StatusPending {
		return apperrors.Conflict("cannot cancel request in status %s", b.Status)
	}

	if err := s.barterRepo.Delete(ctx, barterID); err != nil {
		return err
	}
	s.recordTransition(ctx, b, b.Status, actor, nil)
	s.logger.Info().
		Str("barter_id", b.BarterID.String()).
		Str("actor", actor.ActorString()).
		Msg("barter withdrawn")

	// Notify whichever party did not initiate the removal.
	recipient := b.OwnerID
	related := b.RequesterID
	if actor.UserID == b.OwnerID {
		recipient = b.RequesterID
		related = b.OwnerID
	}
	n := notification.NewNotification(
		recipient,
		notification.CategoryBarterWithdrawn,
		"Barter offer withdrawn",
		fmt.Sprintf("%s withdrew the barter offer", actor.Username),
	)
	n.SetRelated(&b.ItemID, &related)
	s.emitter.Emit(ctx, n)

	return nil
}

// GetMyBarters returns records where the actor is requester or owner,
// newest first, fully expanded.
func (s *Service) GetMyBarters(ctx context.Context, actor Actor, limit, offset int) ([]*domainBarter.BarterRequest, error) {
	return s.barterRepo.ListByParticipant(ctx, actor.UserID, limit, offset)
}

// ListBarters is the moderation view: unscoped by participant. The caller
// gates it by role.
func (s *Service) ListBarters(ctx context.Context, filter domainBarter.Filter, limit, offset int) ([]*domainBarter.BarterRequest, error) {
	return s.barterRepo.List(ctx, filter, limit, offset)
}

// GetByID returns one record after verifying the actor participates in it.
func (s *Service) GetByID(ctx context.Context, actor Actor, barterID uuid.UUID) (*domainBarter.BarterRequest, error) {
	b, err := s.barterRepo.GetByID(ctx, barterID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperrors.NotFound("barter request not found: %s", barterID)
	}
	if !b.IsParticipant(actor.UserID) {
		return nil, apperrors.Forbidden("not a participant of this request")
	}
	return b, nil
}

// reserveAndAccept performs the PENDING -> ACCEPTED transition: both items
// re-read under lock, re-validated, reserved, and the record closed, all in
// one transaction.
func (s *Service) reserveAndAccept(ctx context.Context, b *domainBarter.BarterRequest, actor Actor) error {
	prev := b.Status
	return s.barterRepo.WithTx(ctx, func(txCtx context.Context) error {
		target, err := s.barterRepo.GetItemForUpdate(txCtx, b.ItemID)
		if err != nil {
			return err
		}
		if target == nil {
			return apperrors.NotFound("item not found: %s", b.ItemID)
		}
		offered, err := s.barterRepo.GetItemForUpdate(txCtx, b.OfferItemID)
		if err != nil {
			return err
		}
		if offered == nil {
			return apperrors.NotFound("offer item not found: %s", b.OfferItemID)
		}
		if !target.IsAvailable() {
			return apperrors.Conflict("target item is no longer available (status %s)", target.Status)
		}
		if !offered.IsAvailable() {
			return apperrors.Conflict("offer item is no longer available (status %s)", offered.Status)
		}
		if err := s.barterRepo.UpdateItemStatus(txCtx, target.ItemID, domainItem.StatusReserved); err != nil {
			return err
		}
		if err := s.barterRepo.UpdateItemStatus(txCtx, offered.ItemID, domainItem.StatusReserved); err != nil {
			return err
		}
		b.Status = domainBarter.StatusAccepted
		b.UpdatedAt = time.Now().UTC()
		if err := s.barterRepo.Update(txCtx, b); err != nil {
			return err
		}
		return s.barterRepo.RecordTransition(txCtx, &domainBarter.StateTransition{
			BarterID:       b.BarterID,
			FromStatus:     prev,
			ToStatus:       b.Status,
			Actor:          actor.ActorString(),
			TransitionedAt: b.UpdatedAt,
		})
	})
}

// revertAndReject performs the ACCEPTED -> REJECTED reversal: any item this
// negotiation still holds reserved goes back to available; items moved to
// SOLD or UNAVAILABLE by another subsystem are left alone.
func (s *Service) revertAndReject(ctx context.Context, b *domainBarter.BarterRequest, actor Actor) error {
	prev := b.Status
	return s.barterRepo.WithTx(ctx, func(txCtx context.Context) error {
		for _, id := range []uuid.UUID{b.ItemID, b.OfferItemID} {
			it, err := s.barterRepo.GetItemForUpdate(txCtx, id)
			if err != nil {
				return err
			}
			if it != nil && it.Status == domainItem.StatusReserved {
				if err := s.barterRepo.UpdateItemStatus(txCtx, it.ItemID, domainItem.StatusAvailable); err != nil {
					return err
				}
			}
		}
		b.Status = domainBarter.StatusRejected
		b.UpdatedAt = time.Now().UTC()
		if err := s.barterRepo.Update(txCtx, b); err != nil {
			return err
		}
		return s.barterRepo.RecordTransition(txCtx, &domainBarter.StateTransition{
			BarterID:       b.BarterID,
			FromStatus:     prev,
			ToStatus:       b.Status,
			Actor:          actor.ActorString(),
			TransitionedAt: b.UpdatedAt,
		})
	})
}

func (s *Service) recordTransition(ctx context.Context, b *domainBarter.BarterRequest, from domainBarter.Status, actor Actor, reason *string) {
	to := b.Status
	if b.Status == domainBarter.StatusPending {
		// Removal of a pending record is recorded as CANCELLED.
		to = domainBarter.StatusCancelled
	}
	err := s.barterRepo.RecordTransition(ctx, &domainBarter.StateTransition{
		BarterID:       b.BarterID,
		FromStatus:     from,
		ToStatus:       to,
		Actor:          actor.ActorString(),
		Reason:         reason,
		TransitionedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("barter_id", b.BarterID.String()).Msg("failed to record state transition")
	}
}

// expand attaches display fields from already-loaded items; party lookups
// are best-effort.
func (s *Service) expand(ctx context.Context, b *domainBarter.BarterRequest, target, offered *domainItem.Item) {
	b.Item = target
	b.OfferItem = offered
	if u, err := s.userRepo.GetByID(ctx, b.RequesterID); err == nil && u != nil {
		b.Requester = u
	}
	if u, err := s.userRepo.GetByID(ctx, b.OwnerID); err == nil && u != nil {
		b.Owner = u
	}
}
