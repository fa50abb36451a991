package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/controllers"
	"helpdesk-system/internal/services"
)

func runEquipmentRouter(secureGroup *echo.Group, equipmentService *services.EquipmentService, logger *zap.Logger) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)

	secureGroup.GET("/equipments", equipmentCtrl.GetEquipments)
	secureGroup.GET("/equipment/:id", equipmentCtrl.FindEquipment)
	secureGroup.POST("/equipment", equipmentCtrl.CreateEquipment)
	secureGroup.PUT("/equipment/:id", equipmentCtrl.UpdateEquipment)
	secureGroup.PUT("/equipment/:id/assign", equipmentCtrl.AssignEquipment)
	secureGroup.DELETE("/equipment/:id", equipmentCtrl.DeleteEquipment)
}
