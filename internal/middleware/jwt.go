package middleware // package middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-rental/internal/utils"
)

// Context keys populated by JWTAuth for downstream middleware and handlers.
const (
	CtxUserID  = "user_id"
	CtxIsAdmin = "is_admin"
)

// JWTAuth returns an Echo middleware that authenticates a Bearer token and
// injects the caller identity into the request context. A missing token is
// rejected with 401 before the handler runs; a token that fails signature
// or shape verification is rejected with 400 (the request carried
// credentials, they were just bad). Verification is local, no store call.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			ident, err := utils.ParseAuthToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid token"})
			}

			c.Set(CtxUserID, ident.UserID)
			c.Set(CtxIsAdmin, ident.IsAdmin)
			return next(c)
		}
	}
}
