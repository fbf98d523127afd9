package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Ошибки удалённого API, на которые опираются session и dashboard
var (
	// ErrUnauthorized токен отсутствует, отклонён или истёк (401/403)
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound запрошенная сущность не существует (404)
	ErrNotFound = errors.New("not found")
	// ErrValidation сервер отклонил данные запроса (400/422)
	ErrValidation = errors.New("validation failed")
	// ErrConflict сущность уже существует (409)
	ErrConflict = errors.New("conflict")
	// ErrUnavailable сервер недоступен, ответил 5xx или ограничил частоту запросов
	ErrUnavailable = errors.New("service unavailable")
)

// APIError описывает неуспешный HTTP ответ
// errors.Is сопоставляет его с сентинелами по коду статуса
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Is позволяет писать errors.Is(err, api.ErrNotFound)
func (e *APIError) Is(target error) bool {
	return statusSentinel(e.StatusCode) == target
}

func statusSentinel(code int) error {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		return ErrValidation
	case code == http.StatusConflict:
		return ErrConflict
	case code == http.StatusTooManyRequests, code >= 500:
		return ErrUnavailable
	default:
		return nil
	}
}
