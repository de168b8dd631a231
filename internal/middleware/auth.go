package middleware

import (
	"net/http"
	"strings"

	"github.com/entryx/ticketing/internal/auth"
	"github.com/labstack/echo/v4"
)

// PublicKeyContextKey is where RequireWallet stores the authenticated
// wallet public key on the request context.
const PublicKeyContextKey = "wallet_public_key"

// RequireWallet rejects requests without a valid bearer token and exposes
// the authenticated wallet public key via CallerKey.
func RequireWallet(tokens *auth.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			publicKey, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			c.Set(PublicKeyContextKey, publicKey)
			return next(c)
		}
	}
}

// CallerKey returns the authenticated wallet public key, or "" when the
// request did not pass RequireWallet.
func CallerKey(c echo.Context) string {
	if key, ok := c.Get(PublicKeyContextKey).(string); ok {
		return key
	}
	return ""
}
