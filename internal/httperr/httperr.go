package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/apperr"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusOf maps an error kind onto an HTTP status.
func StatusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err using its kind. Internal details never reach the
// client; they go to the log instead.
func FromError(c *gin.Context, log *zap.Logger, err error) {
	ae, ok := apperr.As(err)
	if !ok {
		ae = &apperr.Error{Kind: apperr.KindInternal, Code: "internal_error", Message: "internal error", Err: err}
	}

	status := StatusOf(ae.Kind)

	switch ae.Kind {
	case apperr.KindInternal:
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("error_code", ae.Code),
			zap.Error(err),
		)
	case apperr.KindTransient:
		log.Warn("transient failure",
			zap.String("path", c.FullPath()),
			zap.String("error_code", ae.Code),
			zap.Error(err),
		)
		c.Header("Retry-After", "1")
	}

	_ = c.Error(err)
	Write(c, status, ae.Code, ae.Message)
}
