// Package handler holds the echo HTTP handlers.  Handlers bind and
// validate the request, call the resolver and translate its errors with
// writeError; they never make authorization decisions themselves.
package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront/internal/auth"
	"github.com/iliyamo/storefront/internal/repository"
)

// errorKind is the HTTP rendering of one error sentinel.
type errorKind struct {
	target error
	status int
	code   string
}

var errorKinds = []errorKind{
	{auth.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{auth.ErrTokenInvalid, http.StatusUnauthorized, "TOKEN_INVALID"},
	{auth.ErrTokenExpiredOrInvalid, http.StatusBadRequest, "TOKEN_EXPIRED_OR_INVALID"},
	{auth.ErrPermissionDenied, http.StatusForbidden, "PERMISSION_DENIED"},
	{auth.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{auth.ErrPasswordMismatch, http.StatusBadRequest, "PASSWORD_MISMATCH"},
	{auth.ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
	{auth.ErrInvalidPermission, http.StatusBadRequest, "INVALID_PERMISSION"},
	{repository.ErrItemNotFound, http.StatusNotFound, "NOT_FOUND"},
	{repository.ErrOrderNotFound, http.StatusNotFound, "NOT_FOUND"},
}

// writeError renders err as {"error": message, "code": CODE}.  Unknown
// errors are logged and reported as a bare 500 so driver messages never
// reach the client.
func writeError(c echo.Context, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "validation failed",
			"code":   "VALIDATION_FAILED",
			"fields": verrs,
		})
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return c.JSON(k.status, echo.Map{"error": k.target.Error(), "code": k.code})
		}
	}
	logger(c).ErrorContext(c.Request().Context(), "request failed",
		"method", c.Request().Method, "path", c.Path(), "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error", "code": "INTERNAL"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg, "code": "VALIDATION_FAILED"})
}
