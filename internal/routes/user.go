package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/controllers"
	"helpdesk-system/internal/services"
)

func runUserRouter(secureGroup *echo.Group, userService *services.UserService, logger *zap.Logger) {
	userCtrl := controllers.NewUserController(userService, logger)

	secureGroup.GET("/users", userCtrl.GetUsers)
	secureGroup.GET("/user/:id", userCtrl.FindUser)
	secureGroup.POST("/user", userCtrl.CreateUser)
	secureGroup.PUT("/user/:id", userCtrl.UpdateUser)
	secureGroup.DELETE("/user/:id", userCtrl.DeleteUser)
	secureGroup.POST("/users/bulk-delete", userCtrl.BulkDeleteUsers)
}
