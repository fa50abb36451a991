package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/controllers"
	"helpdesk-system/internal/services"
)

func runReportRouter(secureGroup *echo.Group, reportService *services.ReportService, logger *zap.Logger) {
	reportCtrl := controllers.NewReportController(reportService, logger)

	secureGroup.GET("/reports/tickets", reportCtrl.GetTicketReport)
}
