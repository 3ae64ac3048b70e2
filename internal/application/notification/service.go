package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prashana14/StudyReuse-sub000/internal/domain/apperrors"
	"github.com/prashana14/StudyReuse-sub000/internal/domain/notification"
)

// defaultTTL bounds how long an undelivered notification stays retryable.
const defaultTTL = 72 * time.Hour

// Service handles notification persistence and delivery.
type Service struct {
	notificationRepo notification.Repository
	sseHub           notification.SSEHub
	logger           zerolog.Logger
}

// NewService creates a new notification service
func NewService(
	notificationRepo notification.Repository,
	sseHub notification.SSEHub,
	logger zerolog.Logger,
) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		sseHub:           sseHub,
		logger:           logger.With().Str("service", "notification").Logger(),
	}
}

// Emit persists a notification intent and attempts immediate delivery.
// It never returns an error: a barter outcome must not be rolled back or
// surfaced as failed because its notification could not be stored or sent.
func (s *Service) Emit(ctx context.Context, n *notification.Notification) {
	if n.ExpiresAt == nil {
		n.SetExpiry(n.CreatedAt.Add(defaultTTL))
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Warn().
			Err(err).
			Str("recipient_id", n.RecipientID.String()).
			Str("category", string(n.Category)).
			Msg("failed to persist notification, dropping")
		return
	}
	if err := s.Send(ctx, n.NotificationID); err != nil {
		s.logger.Warn().
			Err(err).
			Str("notification_id", n.NotificationID.String()).
			Msg("immediate delivery failed, left for retry pump")
	}
}

// Send delivers a notification through SSE and records the outcome.
func (s *Service) Send(ctx context.Context, notificationID uuid.UUID) error {
	n, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("failed to get notification: %w", err)
	}
	if n == nil {
		return apperrors.NotFound("notification not found: %s", notificationID)
	}

	if n.IsExpired() {
		n.MarkExpired()
		if err := s.notificationRepo.Update(ctx, n); err != nil {
			s.logger.Warn().
				Str("notification_id", n.NotificationID.String()).
				Err(err).
				Msg("failed to persist expired status")
		}
		return notification.ErrExpired
	}

	// SENT must be persisted before the actual send attempt.
	if err := n.MarkSent(); err != nil {
		return fmt.Errorf("failed to mark notification as sent: %w", err)
	}
	if err := s.notificationRepo.Update(ctx, n); err != nil {
		return fmt.Errorf("failed to persist sent status: %w", err)
	}

	sendErr := s.sendViaSSE(n)
	if sendErr != nil {
		n.MarkFailed(sendErr.Error())
		s.logger.Warn().
			Str("notification_id", n.NotificationID.String()).
			Err(sendErr).
			Int("retry_count", n.RetryCount).
			Msg("notification send failed")
	} else {
		n.MarkDelivered()
		s.logger.Info().
			Str("notification_id", n.NotificationID.String()).
			Str("recipient_id", n.RecipientID.String()).
			Str("category", string(n.Category)).
			Msg("notification delivered")
	}

	if err := s.notificationRepo.Update(ctx, n); err != nil {
		s.logger.Error().
			Str("notification_id", n.NotificationID.String()).
			Err(err).
			Msg("failed to persist final notification state")
		return err
	}
	return sendErr
}

func (s *Service) sendViaSSE(n *notification.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	msg := notification.NewSSEMessage("notification", data)
	s.sseHub.BroadcastToUser(n.RecipientID.String(), msg)
	return nil
}

// ProcessPendingNotifications delivers notifications still waiting to go out.
func (s *Service) ProcessPendingNotifications(ctx context.Context, limit int) (int, error) {
	notifications, err := s.notificationRepo.ListByStatus(ctx, notification.StatusPending, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending notifications: %w", err)
	}

	processed := 0
	for _, n := range notifications {
		if err := s.Send(ctx, n.NotificationID); err != nil {
			s.logger.Warn().
				Str("notification_id", n.NotificationID.String()).
				Err(err).
				Msg("failed to send pending notification")
			continue
		}
		processed++
	}
	return processed, nil
}

// ProcessRetryableNotifications re-sends failed notifications that still
// have retry budget.
func (s *Service) ProcessRetryableNotifications(ctx context.Context, limit int) (int, error) {
	notifications, err := s.notificationRepo.ListByStatus(ctx, notification.StatusFailed, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list failed notifications: %w", err)
	}

	retried := 0
	for _, n := range notifications {
		if !n.CanRetry() {
			continue
		}
		if err := n.ResetForRetry(); err != nil {
			continue
		}
		// Persist the reset state before attempting to send.
		if err := s.notificationRepo.Update(ctx, n); err != nil {
			s.logger.Error().
				Str("notification_id", n.NotificationID.String()).
				Err(err).
				Msg("failed to persist notification reset state")
			continue
		}
		if err := s.Send(ctx, n.NotificationID); err != nil {
			s.logger.Warn().
				Str("notification_id", n.NotificationID.String()).
				Err(err).
				Int("retry_count", n.RetryCount).
				Msg("retry failed")
			continue
		}
		retried++
	}
	return retried, nil
}

// ExpireOverdueNotifications sweeps undelivered notifications past their
// TTL so they stop cycling through the pending and retry pumps.
func (s *Service) ExpireOverdueNotifications(ctx context.Context, limit int) (int, error) {
	expired := 0
	for _, status := range []notification.Status{notification.StatusPending, notification.StatusFailed} {
		notifications, err := s.notificationRepo.ListByStatus(ctx, status, limit)
		if err != nil {
			return expired, fmt.Errorf("failed to list %s notifications: %w", status, err)
		}
		for _, n := range notifications {
			if !n.IsExpired() {
				continue
			}
			n.MarkExpired()
			if err := s.notificationRepo.Update(ctx, n); err != nil {
				s.logger.Warn().
					Str("notification_id", n.NotificationID.String()).
					Err(err).
					Msg("failed to persist expired status")
				continue
			}
			expired++
		}
	}
	return expired, nil
}

// ListForRecipient returns a user's notifications, optionally unread only.
func (s *Service) ListForRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*notification.Notification, error) {
	filter := notification.Filter{RecipientID: &recipientID}
	if unreadOnly {
		unread := true
		filter.Unread = &unread
	}
	return s.notificationRepo.List(ctx, filter, limit, offset)
}

// MarkRead marks one notification read; only its recipient may do so.
func (s *Service) MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) (*notification.Notification, error) {
	n, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, apperrors.NotFound("notification not found: %s", notificationID)
	}
	if n.RecipientID != recipientID {
		return nil, apperrors.Forbidden("notification belongs to another user")
	}
	if n.Read {
		return n, nil
	}
	n.MarkRead()
	if err := s.notificationRepo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllRead marks every unread notification of a user as read.
func (s *Service) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int, error) {
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}

// CountUnread returns the user's unread notification count.
func (s *Service) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	return s.notificationRepo.CountUnread(ctx, recipientID)
}
