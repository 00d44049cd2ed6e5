package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront/internal/auth"
)

// CookieOptions shapes the session cookie.  MaxAge is the session TTL,
// one year by default.
type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

func (o CookieOptions) base() *http.Cookie {
	ck := &http.Cookie{
		Name:     auth.SessionCookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	// The storefront runs on another origin; browsers only send a
	// cross-site cookie with SameSite=None, which requires Secure.
	if o.Secure {
		ck.SameSite = http.SameSiteNoneMode
	}
	return ck
}

func (o CookieOptions) setSession(c echo.Context, token string) {
	maxAge := o.MaxAge
	if maxAge <= 0 {
		maxAge = auth.DefaultSessionTTL
	}
	ck := o.base()
	ck.Value = token
	ck.MaxAge = int(maxAge / time.Second)
	ck.Expires = time.Now().Add(maxAge)
	c.SetCookie(ck)
}

func (o CookieOptions) clearSession(c echo.Context) {
	ck := o.base()
	ck.MaxAge = -1
	ck.Expires = time.Unix(0, 0)
	c.SetCookie(ck)
}
