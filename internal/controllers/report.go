package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/utils"
)

type ReportController struct {
	reportService *services.ReportService
	logger        *zap.Logger
}

func NewReportController(reportService *services.ReportService, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetTicketReport отдаёт сводку по заявкам. При format=xlsx ответ уходит
// файлом Excel, иначе обычным JSON.
func (c *ReportController) GetTicketReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	rows, err := c.reportService.GetTicketReport(reqCtx)
	if err != nil {
		c.logger.Error("Ошибка при формировании отчёта по заявкам", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if strings.ToLower(ctx.QueryParam("format")) == "xlsx" {
		return c.respondWithXLSX(ctx, rows)
	}

	return utils.SuccessResponse(ctx, rows, "Отчёт успешно сформирован", http.StatusOK)
}

var reportHeaders = []string{
	"ID заявки", "Тема", "Статус", "Приоритет", "Автор", "Исполнитель", "Департамент", "Дата создания",
}

func rowToSlice(row dto.TicketReportRowDTO) []interface{} {
	var createdAt string
	if row.CreatedAt != nil {
		createdAt = row.CreatedAt.Format("02.01.2006 15:04")
	}
	return []interface{}{
		row.ID, row.Title, row.Status, row.Priority, row.Creator, row.Assignee, row.Department, createdAt,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, rows []dto.TicketReportRowDTO) error {
	f := excelize.NewFile()
	sheet := "Отчёт по заявкам"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "H1", style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := rowToSlice(row)
		f.SetSheetRow(sheet, cell, &values)
	}
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "C", "G", 20)
	f.SetColWidth(sheet, "H", "H", 22)

	fileName := fmt.Sprintf("tickets_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
