package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Kind    string      `json:"kind,omitempty"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDOf(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusCreated, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
	})
}

func respondKind(c *gin.Context, code int, kind ErrorKind, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Kind:    string(kind),
		Message: message,
		TraceID: traceIDOf(c),
	})
}

// StatusForKind maps a business failure kind to its HTTP status.
func StatusForKind(kind ErrorKind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalid:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func HandleServiceError(c *gin.Context, err error) {
	if se, ok := AsServiceError(err); ok {
		respondKind(c, StatusForKind(se.Kind), se.Kind, se.Message)
		return
	}

	switch {
	case errors.Is(err, ErrInvalidPage):
		respondKind(c, http.StatusBadRequest, KindInvalid, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		respondKind(c, http.StatusBadRequest, KindInvalid, "Page size must be between 1 and 100")
	case errors.Is(err, ErrInvalidCredentials):
		respondKind(c, http.StatusUnauthorized, KindUnauthorized, "Invalid username or password")
	default:
		zap.L().Error("unhandled service error",
			zap.String("trace_id", traceIDOf(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// RespondBindError reports a request that failed binding or field validation.
func RespondBindError(c *gin.Context, err error) {
	respondKind(c, http.StatusBadRequest, KindInvalid, DescribeBindError(err))
}
