package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/utils"
)

type EquipmentController struct {
	equipmentService *services.EquipmentService
	logger           *zap.Logger
}

func NewEquipmentController(equipmentService *services.EquipmentService, logger *zap.Logger) *EquipmentController {
	return &EquipmentController{equipmentService: equipmentService, logger: logger}
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	filter := utils.ParseFilterFromQuery(ctx.QueryParams())
	equipments, total, err := c.equipmentService.GetEquipments(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, equipments, "Successfully", http.StatusOK, total)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	equipment, err := c.equipmentService.FindEquipment(reqCtx, id)
	if err != nil {
		c.logger.Error("Ошибка при поиске оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, equipment, "Successfully", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("Ошибка при связывании запроса для создания оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	equipment, err := c.equipmentService.CreateEquipment(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, equipment, "Successfully created", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	equipment, err := c.equipmentService.UpdateEquipment(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, equipment, "Successfully updated", http.StatusOK)
}

func (c *EquipmentController) AssignEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.AssignEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	equipment, err := c.equipmentService.AssignEquipment(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Ошибка при назначении оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, equipment, "Successfully", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentService.DeleteEquipment(reqCtx, id); err != nil {
		c.logger.Error("Ошибка при удалении оборудования", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Successfully deleted", http.StatusOK)
}
