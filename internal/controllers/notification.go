package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/utils"
)

type NotificationController struct {
	notificationService *services.NotificationService
	logger              *zap.Logger
}

func NewNotificationController(notificationService *services.NotificationService, logger *zap.Logger) *NotificationController {
	return &NotificationController{notificationService: notificationService, logger: logger}
}

func (c *NotificationController) GetMyNotifications(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	onlyUnread := ctx.QueryParam("unread") == "true"
	notifications, err := c.notificationService.GetMyNotifications(reqCtx, onlyUnread)
	if err != nil {
		c.logger.Error("Ошибка при получении уведомлений", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, notifications, "Successfully", http.StatusOK)
}

func (c *NotificationController) MarkRead(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.notificationService.MarkRead(reqCtx, id); err != nil {
		c.logger.Error("Ошибка при отметке уведомления прочитанным", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Successfully", http.StatusOK)
}

func (c *NotificationController) MarkAllRead(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	if err := c.notificationService.MarkAllRead(reqCtx); err != nil {
		c.logger.Error("Ошибка при отметке всех уведомлений прочитанными", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Successfully", http.StatusOK)
}
