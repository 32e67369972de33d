// file: internal/services/notification_service.go
package services

import (
	"context"
	"database/sql"
	"errors"

	"fresherjobs/internal/models"
	"fresherjobs/internal/repositories"

	"go.uber.org/zap"
)

// notificationService implements NotificationService
type notificationService struct {
	notifRepo repositories.NotificationRepository
	logger    *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifRepo repositories.NotificationRepository, logger *zap.Logger) NotificationService {
	return &notificationService{
		notifRepo: notifRepo,
		logger:    logger,
	}
}

// ListNotifications returns the user's notifications, newest first
func (s *notificationService) ListNotifications(ctx context.Context, userID int64, unreadOnly bool) ([]*models.Notification, error) {
	notifs, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, NewInternalError("failed to list notifications")
	}
	return notifs, nil
}

// CountUnread returns the user's unread notification count
func (s *notificationService) CountUnread(ctx context.Context, userID int64) (int64, error) {
	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, NewInternalError("failed to count notifications")
	}
	return count, nil
}

// MarkRead marks one of the user's notifications read
func (s *notificationService) MarkRead(ctx context.Context, id, userID int64) error {
	if err := s.notifRepo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EntityNotFoundError("notification", id)
		}
		return NewInternalError("failed to mark notification read")
	}
	return nil
}

// MarkAllRead marks every unread notification read
func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.notifRepo.MarkAllRead(ctx, userID); err != nil {
		return NewInternalError("failed to mark notifications read")
	}
	return nil
}
