package controllers

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "helpdesk-system/pkg/errors"
)

// parseIDParam читает числовой параметр пути; невалидное значение - это
// ошибка клиента, а не сервера.
func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.Validation(fmt.Sprintf("неверный формат параметра %s", name))
	}
	return id, nil
}
