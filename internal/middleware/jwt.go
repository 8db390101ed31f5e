package middleware // middleware provides reusable HTTP middleware functions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/auth"
)

// Context keys under which the gate stores verified access-token claims.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

// RequireAuth returns the gate that protects every authenticated route. It
// pulls the access-token cookie, verifies it via the token service, and puts
// the decoded claims into the request context for downstream handlers.
//
// Both a missing cookie and a failed verification answer 403; the gate never
// answers 401, which is reserved for bad login credentials. It also never
// refreshes an expired token: refresh is its own explicitly-invoked endpoint.
func RequireAuth(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(auth.AccessCookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false, "message": "Authentication required",
				})
			}
			claims, err := tokens.VerifyAccess(cookie.Value)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false, "message": "Invalid or expired token",
				})
			}
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxUsername, claims.Username)
			return next(c)
		}
	}
}
