package service

import (
	"context"
	"fmt"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/google/uuid"
)

const defaultNotificationLimit = 50

// NotificationService exposes the user's notification inbox
type NotificationService struct {
	notificationRepo domain.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo domain.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListMine returns the most recent notifications for the user
func (s *NotificationService) ListMine(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > defaultNotificationLimit {
		limit = defaultNotificationLimit
	}

	notifications, err := s.notificationRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}
