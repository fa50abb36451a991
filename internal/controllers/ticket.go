package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/utils"
)

type TicketController struct {
	ticketService *services.TicketService
	logger        *zap.Logger
}

func NewTicketController(ticketService *services.TicketService, logger *zap.Logger) *TicketController {
	return &TicketController{ticketService: ticketService, logger: logger}
}

func (c *TicketController) GetTickets(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	filter := utils.ParseFilterFromQuery(ctx.QueryParams())
	tickets, total, err := c.ticketService.GetTickets(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка заявок", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, tickets, "Successfully", http.StatusOK, total)
}

func (c *TicketController) FindTicket(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ticket, err := c.ticketService.FindTicket(reqCtx, id)
	if err != nil {
		c.logger.Error("Ошибка при поиске заявки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, ticket, "Successfully", http.StatusOK)
}

func (c *TicketController) CreateTicket(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateTicketDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("Ошибка при связывании запроса для создания заявки", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ticket, err := c.ticketService.CreateTicket(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании заявки", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, ticket, "Successfully created", http.StatusCreated)
}

func (c *TicketController) UpdateTicket(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateTicketDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ticket, err := c.ticketService.UpdateTicket(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении заявки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, ticket, "Successfully updated", http.StatusOK)
}

func (c *TicketController) AssignTicket(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.AssignTicketDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ticket, err := c.ticketService.AssignTicket(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Ошибка при назначении заявки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, ticket, "Successfully", http.StatusOK)
}

func (c *TicketController) CloseTicket(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ticket, err := c.ticketService.CloseTicket(reqCtx, id)
	if err != nil {
		c.logger.Error("Ошибка при закрытии заявки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, ticket, "Successfully", http.StatusOK)
}

func (c *TicketController) EscalateTicket(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ticket, err := c.ticketService.EscalateTicket(reqCtx, id)
	if err != nil {
		c.logger.Error("Ошибка при эскалации заявки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, ticket, "Successfully", http.StatusOK)
}

func (c *TicketController) DeleteTicket(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.ticketService.DeleteTicket(reqCtx, id); err != nil {
		c.logger.Error("Ошибка при удалении заявки", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Successfully deleted", http.StatusOK)
}
