package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON error envelope every failing endpoint renders.
type Err struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`

	cause error
}

func newErr(statusCode int, message string, cause error) *Err {
	return &Err{
		StatusCode: statusCode,
		Message:    message,
		cause:      cause,
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err.Error(), err)
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, "invalid credentials", err)
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, "authentication required", err)
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err.Error(), err)
}

func ErrNotFound(err error) *Err {
	return newErr(http.StatusNotFound, err.Error(), err)
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, err.Error(), err)
}

// ErrInternalServerError hides the cause from the client. The wrapped error
// still reaches the log through RenderErr.
func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, "internal server error", err)
}

// RenderErr logs the failure with its request id and writes the JSON
// envelope. Server faults log at error level, client faults at warn.
func RenderErr(ctx *gin.Context, err *Err) {
	fields := []zap.Field{
		zap.String("request_id", requestid.Get(ctx)),
		zap.String("method", ctx.Request.Method),
		zap.String("path", ctx.Request.URL.Path),
		zap.Int("status", err.StatusCode),
		zap.Error(err.cause),
	}

	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed", fields...)
	} else {
		zap.L().Warn("request rejected", fields...)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}
