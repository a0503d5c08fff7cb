package http

import (
	"net/http"

	"p2p-lending-backend/pkg/apperr"

	"github.com/labstack/echo/v4"
)

const msgInternal = "Internal server error"

func statusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation, apperr.KindBadRequest, apperr.KindInsufficientBalance:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a usecase error to its status and caller-facing message.
// Unclassified errors become 500 and are logged, never echoed.
func writeError(c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		c.Logger().Error(err)
	}
	return c.JSON(statusFor(kind), ErrorResponse{Message: apperr.MessageOf(err, msgInternal)})
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid body"})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Message: "validation failed",
		Details: ToFieldErrors(err),
	})
}
