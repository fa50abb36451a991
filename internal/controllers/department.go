package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/utils"
)

type DepartmentController struct {
	departmentService *services.DepartmentService
	logger            *zap.Logger
}

func NewDepartmentController(departmentService *services.DepartmentService, logger *zap.Logger) *DepartmentController {
	return &DepartmentController{departmentService: departmentService, logger: logger}
}

func (c *DepartmentController) GetDepartments(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	filter := utils.ParseFilterFromQuery(ctx.QueryParams())
	departments, total, err := c.departmentService.GetDepartments(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка департаментов", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, departments, "Successfully", http.StatusOK, total)
}

func (c *DepartmentController) GetDepartmentStats(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	stats, err := c.departmentService.GetDepartmentStats(reqCtx)
	if err != nil {
		c.logger.Error("Ошибка при получении статистики департаментов", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, stats, "Successfully", http.StatusOK)
}

func (c *DepartmentController) FindDepartment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	department, err := c.departmentService.FindDepartment(reqCtx, id)
	if err != nil {
		c.logger.Error("Ошибка при поиске департамента", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, department, "Successfully", http.StatusOK)
}

func (c *DepartmentController) CreateDepartment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateDepartmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("Ошибка при связывании запроса для создания департамента", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	department, err := c.departmentService.CreateDepartment(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании департамента", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, department, "Successfully created", http.StatusCreated)
}

func (c *DepartmentController) UpdateDepartment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateDepartmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	department, err := c.departmentService.UpdateDepartment(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении департамента", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, department, "Successfully updated", http.StatusOK)
}

func (c *DepartmentController) DeleteDepartment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.departmentService.DeleteDepartment(reqCtx, id); err != nil {
		c.logger.Error("Ошибка при удалении департамента", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Successfully deleted", http.StatusOK)
}
