package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/utils"
)

type CommentController struct {
	commentService *services.CommentService
	logger         *zap.Logger
}

func NewCommentController(commentService *services.CommentService, logger *zap.Logger) *CommentController {
	return &CommentController{commentService: commentService, logger: logger}
}

func (c *CommentController) GetCommentsByTicket(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	ticketID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	comments, err := c.commentService.GetCommentsByTicket(reqCtx, ticketID)
	if err != nil {
		c.logger.Error("Ошибка при получении комментариев заявки", zap.Uint64("ticketId", ticketID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, comments, "Successfully", http.StatusOK)
}

func (c *CommentController) CreateComment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	ticketID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateCommentDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("Ошибка при связывании запроса для создания комментария", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	comment, err := c.commentService.CreateComment(reqCtx, ticketID, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании комментария", zap.Uint64("ticketId", ticketID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, comment, "Successfully created", http.StatusCreated)
}

func (c *CommentController) UpdateComment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateCommentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	comment, err := c.commentService.UpdateComment(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении комментария", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, comment, "Successfully updated", http.StatusOK)
}

func (c *CommentController) DeleteComment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.commentService.DeleteComment(reqCtx, id); err != nil {
		c.logger.Error("Ошибка при удалении комментария", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Successfully deleted", http.StatusOK)
}
