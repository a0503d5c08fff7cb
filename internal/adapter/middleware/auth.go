package middleware

import (
	"net/http"
	"strings"

	"p2p-lending-backend/internal/security"

	"github.com/labstack/echo/v4"
)

const (
	ctxUserID   = "auth.user_id"
	ctxUsername = "auth.username"
)

// JWTAuth requires "Authorization: Bearer <token>" and stores the caller in the echo context.
func JWTAuth(tokens security.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, tok, ok := strings.Cut(raw, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tok) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Authentication credentials were not provided."})
			}

			claims, err := tokens.ValidateToken(strings.TrimSpace(tok))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Given token not valid for any token type"})
			}
			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxUsername, claims.Username)
			return next(c)
		}
	}
}

// UserID returns the authenticated caller set by JWTAuth.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ctxUserID).(uint64)
	return id, ok && id != 0
}

// SetUserID is what JWTAuth does after validating a token; handlers' tests use it directly.
func SetUserID(c echo.Context, id uint64) { c.Set(ctxUserID, id) }
