package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront/internal/resolver"
)

// AuthHandler serves signup, signin, signout, the password reset pair and
// the current user.
type AuthHandler struct {
	R      *resolver.Resolver
	Cookie CookieOptions
}

func NewAuthHandler(r *resolver.Resolver, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{R: r, Cookie: cookie}
}

// Signup: create the user, set the session cookie, return the user.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}

	ctx, cancel, _ := scope(c)
	defer cancel()

	s, err := h.R.Signup(ctx, resolver.SignupInput{Email: req.Email, Name: req.Name, Password: req.Password})
	if err != nil {
		return writeError(c, err)
	}
	h.Cookie.setSession(c, s.Token)
	return c.JSON(http.StatusCreated, s.User)
}

// Signin: check credentials, set the session cookie, return the user.
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}

	ctx, cancel, _ := scope(c)
	defer cancel()

	s, err := h.R.Signin(ctx, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	h.Cookie.setSession(c, s.Token)
	return c.JSON(http.StatusOK, s.User)
}

// Signout clears the session cookie.  It needs no session.
func (h *AuthHandler) Signout(c echo.Context) error {
	h.Cookie.clearSession(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "GoodBye"})
}

// RequestReset issues a reset token and mails the link.
func (h *AuthHandler) RequestReset(c echo.Context) error {
	var req requestResetReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}

	ctx, cancel, _ := scope(c)
	defer cancel()

	if err := h.R.RequestReset(ctx, req.Email); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Thanks!"})
}

// ResetPassword sets the new password and signs the user in.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}

	ctx, cancel, _ := scope(c)
	defer cancel()

	s, err := h.R.ResetPassword(ctx, resolver.ResetPasswordInput{
		ResetToken:      req.ResetToken,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return writeError(c, err)
	}
	h.Cookie.setSession(c, s.Token)
	return c.JSON(http.StatusOK, s.User)
}

// Me returns the signed-in user, or JSON null.
func (h *AuthHandler) Me(c echo.Context) error {
	ctx, cancel, rc := scope(c)
	defer cancel()

	u := h.R.Me(ctx, rc)
	if u == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, u)
}
