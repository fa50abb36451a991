package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenIsNotRefresh    = fmt.Errorf("токен не является refresh-токеном")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")
	ErrTokenRevoked         = fmt.Errorf("токен отозван")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrTooManyAttempts    = fmt.Errorf("слишком много попыток входа, попробуйте позже")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound       = fmt.Errorf("запись не найдена")
	ErrConflict       = fmt.Errorf("конфликт данных")
	ErrBadRequest     = fmt.Errorf("неверный запрос")
	ErrInternalServer = fmt.Errorf("внутренняя ошибка сервера")
)

// HttpError - ошибка уровня API с HTTP-статусом и человекочитаемым сообщением.
// Message уходит клиенту, Err остаётся для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}

// Конструкторы по таксономии ошибок API: 401 / 403 / 404 / 409 / 400.

func Unauthenticated(message string) *HttpError {
	return NewHttpError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(reason string) *HttpError {
	return NewHttpError(http.StatusForbidden, reason, ErrForbidden)
}

func NotFound(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message, ErrNotFound)
}

func Conflict(message string) *HttpError {
	return NewHttpError(http.StatusConflict, message, ErrConflict)
}

func Validation(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, ErrBadRequest)
}

// IsForbidden сообщает, является ли ошибка отказом авторизации.
func IsForbidden(err error) bool {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code == http.StatusForbidden
	}
	return errors.Is(err, ErrForbidden)
}
