package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/controllers"
	"helpdesk-system/internal/services"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, authService *services.AuthService, logger *zap.Logger) {
	authCtrl := controllers.NewAuthController(authService, logger)

	api.POST("/auth/login", authCtrl.Login)
	api.POST("/auth/refresh", authCtrl.Refresh)

	secureGroup.POST("/auth/logout", authCtrl.Logout)
	secureGroup.GET("/auth/me", authCtrl.Me)
	secureGroup.PUT("/auth/profile", authCtrl.UpdateProfile)
	secureGroup.PUT("/auth/password", authCtrl.ChangePassword)
}
