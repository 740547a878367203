package errors

import (
	"fmt"
)

// ErrorCode представляет код ошибки
type ErrorCode string

const (
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"

	ErrCodeProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	ErrCodeProductNotFound ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeNotEntitled     ErrorCode = "NOT_ENTITLED"
	ErrCodeInvalidInitData ErrorCode = "INVALID_INIT_DATA"

	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

// AppError представляет типизированную ошибку приложения.
// Message — это то, что уходит клиенту; Cause остается во внутренних логах.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsInternal проверяет, является ли ошибка внутренней
func (e *AppError) IsInternal() bool {
	return e.Code == ErrCodeInternal || e.Code == ErrCodeDatabaseError
}

// New создает новую ошибку приложения
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap оборачивает существующую ошибку
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// Конструкторы для часто используемых ошибок

// NewInvalidInitDataError возвращает единый ответ для всех отказов проверки
// подписи. Конкретная причина не раскрывается клиенту.
func NewInvalidInitDataError(cause error) *AppError {
	return Wrap(cause, ErrCodeInvalidInitData, "Invalid initData")
}

func NewProfileNotFoundError(telegramID int64) *AppError {
	return New(ErrCodeProfileNotFound, "Profile not found").
		WithCause(fmt.Errorf("no profile for telegram id %d", telegramID))
}

// NewProductNotFoundError используется и для отсутствующего товара, и для
// чужого: владелец другого товара получает неотличимый ответ.
func NewProductNotFoundError() *AppError {
	return New(ErrCodeProductNotFound, "Product not found")
}

func NewNotEntitledError() *AppError {
	return New(ErrCodeNotEntitled, "Premium subscription required")
}

func NewUnsupportedActionError(action string) *AppError {
	return New(ErrCodeBadRequest, "Invalid action").
		WithCause(fmt.Errorf("unsupported action %q", action))
}

func NewDatabaseError(operation string, err error) *AppError {
	return Wrap(fmt.Errorf("database operation %s: %w", operation, err),
		ErrCodeDatabaseError, "Internal server error")
}

// WithCause добавляет причину к ошибке
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// AsAppError приводит ошибку к AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
