package service

import (
	"context"

	"bookhub/internal/models"
	"bookhub/internal/repository"
)

type NotificationService interface {
	List(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, recipientID string) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) List(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	return s.notificationRepo.ListByRecipientID(ctx, recipientID, unreadOnly, limit, offset)
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, recipientID string) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, recipientID)
}
