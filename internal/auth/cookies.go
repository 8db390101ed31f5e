package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Cookie names and paths for the session pair. The refresh cookie is
// path-restricted to the refresh endpoint so browsers never attach the
// long-lived credential to unrelated requests.
const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"
	AccessCookiePath  = "/"
	RefreshCookiePath = "/api/auth/refresh-token"
)

// CookieWriter binds a token pair to the response as secure cookies. It is
// deliberately ignorant of token contents; it only handles transport.
type CookieWriter struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCookieWriter builds a CookieWriter whose cookie lifetimes mirror the
// token lifetimes of the given service.
func NewCookieWriter(svc *TokenService, secure bool) *CookieWriter {
	return &CookieWriter{secure: secure, accessTTL: svc.AccessTTL(), refreshTTL: svc.RefreshTTL()}
}

// Set attaches both session cookies to the response. SameSite=None lets a
// separately hosted frontend send them cross-site; browsers require Secure
// alongside SameSite=None.
func (w *CookieWriter) Set(c echo.Context, access, refresh string) {
	c.SetCookie(w.cookie(AccessCookieName, access, AccessCookiePath, int(w.accessTTL.Seconds())))
	c.SetCookie(w.cookie(RefreshCookieName, refresh, RefreshCookiePath, int(w.refreshTTL.Seconds())))
}

// Clear expires both session cookies. The attributes must match Set exactly,
// path included: a cookie cleared under a different path is a different
// cookie as far as the browser is concerned, and the original survives.
func (w *CookieWriter) Clear(c echo.Context) {
	c.SetCookie(w.cookie(AccessCookieName, "", AccessCookiePath, -1))
	c.SetCookie(w.cookie(RefreshCookieName, "", RefreshCookiePath, -1))
}

func (w *CookieWriter) cookie(name, value, path string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   w.secure,
		SameSite: http.SameSiteNoneMode,
	}
}
