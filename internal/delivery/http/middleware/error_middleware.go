// Package middleware contains the echo middleware of the gateway.
package middleware

import (
	"log/slog"
	"net/http"

	domainerrors "passport/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware converts errors that escape a handler into the fixed
// {error, message} JSON shape. Endpoint handlers convert their own
// domain errors; this is the safety net for anything unexpected.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		message := appErr.Details()
		if message == "" {
			message = appErr.Message()
		}
		c.JSON(appErr.HTTPCode(), domainerrors.Response{
			Error:   appErr.Message(),
			Message: message,
		})

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, _ := httpErr.Message.(string)
		c.JSON(httpErr.Code, domainerrors.Response{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})

		return
	}

	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	c.JSON(http.StatusInternalServerError, domainerrors.Response{
		Error:   "Internal server error",
		Message: "An unexpected error occurred",
	})
}
