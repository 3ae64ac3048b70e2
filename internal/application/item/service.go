package item

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prashana14/StudyReuse-sub000/internal/domain/apperrors"
	domain "github.com/prashana14/StudyReuse-sub000/internal/domain/item"
)

// Service handles the item catalog.
type Service struct {
	repo   domain.Repository
	logger zerolog.Logger
}

// NewService creates an item service.
func NewService(repo domain.Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("service", "item").Logger(),
	}
}

// CreateInput defines item listing input.
type CreateInput struct {
	Title       string
	Description string
	Category    string
	Condition   domain.Condition
}

// UpdateInput defines item update input.
type UpdateInput struct {
	Title       *string
	Description *string
	Category    *string
	Condition   *domain.Condition
}

func (s *Service) CreateItem(ctx context.Context, ownerID uuid.UUID, input CreateInput) (*domain.Item, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.InvalidOperation("title is required")
	}
	if input.Condition == "" {
		input.Condition = domain.ConditionUsed
	}
	if !domain.ValidateCondition(input.Condition) {
		return nil, apperrors.InvalidOperation("invalid condition: %s", input.Condition)
	}

	it := domain.NewItem(ownerID, title, input.Description, input.Category, input.Condition)
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	s.logger.Info().Str("item_id", it.ItemID.String()).Str("owner_id", ownerID.String()).Msg("item listed")
	return it, nil
}

func (s *Service) UpdateItem(ctx context.Context, actorID, itemID uuid.UUID, input UpdateInput) (*domain.Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperrors.NotFound("item not found: %s", itemID)
	}
	if !it.IsOwnedBy(actorID) {
		return nil, apperrors.Forbidden("item belongs to another user")
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.InvalidOperation("title is required")
		}
		it.Title = title
	}
	if input.Description != nil {
		it.Description = *input.Description
	}
	if input.Category != nil {
		it.Category = *input.Category
	}
	if input.Condition != nil {
		if !domain.ValidateCondition(*input.Condition) {
			return nil, apperrors.InvalidOperation("invalid condition: %s", *input.Condition)
		}
		it.Condition = *input.Condition
	}
	it.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// SetStatus lets an owner take an item off the market or relist it.
// RESERVED is owned by the barter lifecycle and cannot be set by hand.
func (s *Service) SetStatus(ctx context.Context, actorID, itemID uuid.UUID, status domain.Status) (*domain.Item, error) {
	status = domain.NormalizeStatus(status)
	if !domain.ValidateStatus(status) {
		return nil, apperrors.InvalidOperation("invalid status: %s", status)
	}
	if status == domain.StatusReserved {
		return nil, apperrors.InvalidOperation("RESERVED is set by accepting a barter, not directly")
	}
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperrors.NotFound("item not found: %s", itemID)
	}
	if !it.IsOwnedBy(actorID) {
		return nil, apperrors.Forbidden("item belongs to another user")
	}
	if it.Status == domain.StatusReserved {
		return nil, apperrors.Conflict("item is reserved by an accepted barter")
	}
	// Conditioned on the status we just read; a concurrent accept that
	// reserves the item in between must not be clobbered.
	updated, err := s.repo.UpdateStatusFrom(ctx, itemID, it.Status, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperrors.Conflict("item status changed concurrently")
	}
	it.Status = status
	it.UpdatedAt = time.Now().UTC()
	return it, nil
}

func (s *Service) GetItem(ctx context.Context, itemID uuid.UUID) (*domain.Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperrors.NotFound("item not found: %s", itemID)
	}
	return it, nil
}

func (s *Service) ListItems(ctx context.Context, filter domain.Filter, limit, offset int) ([]*domain.Item, error) {
	return s.repo.List(ctx, filter, limit, offset)
}
