package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/controllers"
	"helpdesk-system/internal/services"
)

func runNotificationRouter(secureGroup *echo.Group, notificationService *services.NotificationService, logger *zap.Logger) {
	notificationCtrl := controllers.NewNotificationController(notificationService, logger)

	secureGroup.GET("/notifications", notificationCtrl.GetMyNotifications)
	secureGroup.PUT("/notification/:id/read", notificationCtrl.MarkRead)
	secureGroup.PUT("/notifications/read-all", notificationCtrl.MarkAllRead)
}
