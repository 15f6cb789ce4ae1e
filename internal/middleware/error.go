package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/apperr"
	"github.com/pageza/cookbook/backend/internal/logging"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error *apperr.Error `json:"error"`
}

// Abort records err for ErrorHandler and stops the handler chain
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler renders errors attached to the context and recovers panics.
// Register it ahead of every handler that can call Abort.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logging.Ctx(c.Request.Context()).Error().
					Interface("panic", r).
					Str("path", c.Request.URL.Path).
					Msg("recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: apperr.ErrInternal})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		render(c, c.Errors.Last().Err)
	}
}

func render(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal("internal server error", err)
	}

	if appErr.Kind == apperr.KindInternal {
		logging.Ctx(c.Request.Context()).Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		appErr = apperr.ErrInternal
	}

	c.JSON(appErr.HTTPStatus(), ErrorResponse{Error: appErr})
}
