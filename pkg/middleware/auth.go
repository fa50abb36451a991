package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/pkg/contextkeys"
	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/service"
	"helpdesk-system/pkg/utils"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth проверяет Bearer-токен и кладёт UserID и роль в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		// Refresh-токен не годится для доступа к API
		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, claims.Role)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
