package http

import (
	"errors"
	"net/http"

	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps an engine error to its HTTP status and writes the uniform
// error body. Validation failures are the caller's fault, conflicts mean a
// concurrent writer got there first, and authentication failures never say
// which check rejected the token.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrAuthenticationFailed):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrHandoffConsumed),
		errors.Is(err, errs.ErrStateConflict):
		status = http.StatusConflict
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

// writeBadRequest reports a malformed request body or path parameter.
func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
