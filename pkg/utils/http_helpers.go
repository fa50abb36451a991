package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "helpdesk-system/pkg/errors"
	"helpdesk-system/pkg/types"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

const (
	DefaultLimit = 200
	MaxLimit     = 500
)

// ParseFilterFromQuery разбирает search / sort[...] / filter[...] / limit /
// page / offset из query-параметров.
func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:   make(map[string]string),
		Filter: make(map[string]interface{}),
		Limit:  DefaultLimit,
		Page:   1,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filterReq.Limit = MaxLimit
			} else {
				filterReq.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filterReq.Offset = o
		}
	} else {
		filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit
	}

	if values.Get("withPagination") == "false" {
		filterReq.WithPagination = false
	} else {
		filterReq.WithPagination = true
	}

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}

		if key == "search" {
			filterReq.Search = vals[0]
			continue
		}

		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			field := key[5 : len(key)-1]
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[field] = direction
			}
			continue
		}

		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[7 : len(key)-1]
			if existing, ok := filterReq.Filter[field]; ok {
				filterReq.Filter[field] = fmt.Sprintf("%v,%s", existing, vals[0])
			} else {
				filterReq.Filter[field] = vals[0]
			}
		}
	}

	return filterReq
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message}
	withPagination, _ := strconv.ParseBool(ctx.QueryParam("withPagination"))
	if withPagination && len(total) > 0 {
		filter := ParseFilterFromQuery(ctx.Request().URL.Query())
		totalPages := 0
		if filter.Limit > 0 {
			totalPages = (int(total[0]) + filter.Limit - 1) / filter.Limit
		}
		pagination := types.Pagination{
			TotalCount: total[0],
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages,
		}
		response.Body = map[string]interface{}{"list": body, "pagination": pagination}
	} else {
		response.Body = body
	}
	return ctx.JSON(code, response)
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= http.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}
		return c.JSON(httpErr.Code, map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		})
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return c.JSON(echoErr.Code, map[string]interface{}{
			"status":  false,
			"message": fmt.Sprintf("%v", echoErr.Message),
		})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": "Ошибка валидации: " + strings.Join(msgs, "; "),
		})
	}

	// Сентинели без HTTP-обёртки
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]interface{}{"status": false, "message": apperrors.ErrNotFound.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		return c.JSON(http.StatusConflict, map[string]interface{}{"status": false, "message": apperrors.ErrConflict.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]interface{}{"status": false, "message": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader):
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{"status": false, "message": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{"status": false, "message": err.Error()})
	case errors.Is(err, apperrors.ErrTooManyAttempts):
		return c.JSON(http.StatusTooManyRequests, map[string]interface{}{"status": false, "message": err.Error()})
	case errors.Is(err, apperrors.ErrBadRequest):
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": err.Error()})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Внутренняя ошибка сервера",
	})
}
