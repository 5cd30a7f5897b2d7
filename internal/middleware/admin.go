package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin returns a middleware that aborts with 403 unless the caller
// identity carries the admin flag. It must run after JWTAuth, which stores
// the flag in the context; registering it on an unauthenticated route is a
// wiring mistake and every request will be rejected.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, ok := c.Get(CtxIsAdmin).(bool)
			if !ok || !isAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "admin access required"})
			}
			return next(c)
		}
	}
}
