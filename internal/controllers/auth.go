package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/dto"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/utils"
)

type AuthController struct {
	authService *services.AuthService
	logger      *zap.Logger
}

func NewAuthController(authService *services.AuthService, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (c *AuthController) Login(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.LoginDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("Ошибка при связывании запроса логина", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	tokens, err := c.authService.Login(reqCtx, payload)
	if err != nil {
		c.logger.Warn("Неудачная попытка входа", zap.String("email", payload.Email), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, tokens, "Successfully", http.StatusOK)
}

func (c *AuthController) Refresh(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.RefreshDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	tokens, err := c.authService.Refresh(reqCtx, payload)
	if err != nil {
		c.logger.Warn("Неудачное обновление токена", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, tokens, "Successfully", http.StatusOK)
}

func (c *AuthController) Logout(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.RefreshDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.authService.Logout(reqCtx, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Successfully", http.StatusOK)
}

func (c *AuthController) Me(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	user, err := c.authService.Me(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, user, "Successfully", http.StatusOK)
}

func (c *AuthController) UpdateProfile(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.UpdateProfileDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	user, err := c.authService.UpdateProfile(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении профиля", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, user, "Successfully updated", http.StatusOK)
}

func (c *AuthController) ChangePassword(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.ChangePasswordDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.authService.ChangePassword(reqCtx, payload); err != nil {
		c.logger.Warn("Неудачная смена пароля", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Successfully", http.StatusOK)
}
