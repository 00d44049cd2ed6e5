package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storefront/internal/auth"
	"github.com/iliyamo/storefront/internal/repository"
)

func render(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, writeError(c, err))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestWriteError_Kinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{auth.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{auth.ErrTokenInvalid, http.StatusUnauthorized, "TOKEN_INVALID"},
		{auth.ErrTokenExpiredOrInvalid, http.StatusBadRequest, "TOKEN_EXPIRED_OR_INVALID"},
		{auth.ErrPermissionDenied, http.StatusForbidden, "PERMISSION_DENIED"},
		{auth.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{auth.ErrPasswordMismatch, http.StatusBadRequest, "PASSWORD_MISMATCH"},
		{auth.ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{fmt.Errorf("%w: %v", auth.ErrInvalidPermission, "BOGUS"), http.StatusBadRequest, "INVALID_PERMISSION"},
		{repository.ErrItemNotFound, http.StatusNotFound, "NOT_FOUND"},
		{repository.ErrOrderNotFound, http.StatusNotFound, "NOT_FOUND"},
		{errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			status, body := render(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestWriteError_HidesInternalMessage(t *testing.T) {
	_, body := render(t, errors.New("Error 1045: Access denied for user 'root'"))
	assert.Equal(t, "internal error", body["error"])
}

func TestWriteError_Validation(t *testing.T) {
	status, body := render(t, signupReq{Email: "nope", Name: "", Password: "x"}.Validate())
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", body["code"])

	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "password")

	var verrs validation.Errors
	assert.True(t, errors.As(signinReq{}.Validate(), &verrs))
}
