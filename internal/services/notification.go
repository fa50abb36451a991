package services

import (
	"context"

	"helpdesk-system/internal/entities"
	"helpdesk-system/internal/repositories"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/utils"
)

type NotificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
}

func NewNotificationService(notificationRepo repositories.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// GetMyNotifications возвращает уведомления текущего пользователя,
// новые первыми.
func (s *NotificationService) GetMyNotifications(ctx context.Context, onlyUnread bool) ([]entities.Notification, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.Unauthenticated(err.Error())
	}
	return s.notificationRepo.GetNotificationsByUser(ctx, userID, onlyUnread)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uint64) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return apperrors.Unauthenticated(err.Error())
	}
	notification, err := s.notificationRepo.FindNotification(ctx, id)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return apperrors.Forbidden("чужое уведомление")
	}
	return s.notificationRepo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return apperrors.Unauthenticated(err.Error())
	}
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
