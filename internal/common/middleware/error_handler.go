package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"miniapp-market-backend/internal/common/errors"
	"miniapp-market-backend/internal/common/logger"
)

// RequestID middleware для добавления ID запроса
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// ErrorHandler переводит AppError из контекста в HTTP-ответ вида {"error": ...}.
// Внутренние детали (Cause) попадают только в лог, никогда в ответ.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := errors.AsAppError(err)
		if !ok {
			appErr = errors.Wrap(err, errors.ErrCodeInternal, "Internal server error")
		}

		sendError(c, appErr)
	}
}

// Recovery перехватывает паники и отвечает 500
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Str("request_id", getRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}

func sendError(c *gin.Context, appErr *errors.AppError) {
	status := httpStatus(appErr.Code)

	event := logger.Warn()
	if appErr.IsInternal() {
		event = logger.Error()
	}
	event.
		Str("request_id", getRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Int("status", status).
		Err(appErr).
		Msg("Request failed")

	c.JSON(status, gin.H{"error": appErr.Message})
}

// httpStatus возвращает HTTP статус код для кода ошибки
func httpStatus(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidInitData:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden, errors.ErrCodeNotEntitled:
		return http.StatusForbidden
	case errors.ErrCodeNotFound, errors.ErrCodeProfileNotFound, errors.ErrCodeProductNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// getRequestID получает ID запроса из контекста
func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return "unknown"
}
