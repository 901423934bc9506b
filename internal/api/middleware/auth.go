package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cineplex/reservation-system/internal/core/ports"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUsername = "username"
	CtxRole     = "role"
	CtxToken    = "access_token"
)

// Auth validates the bearer access token and injects the verified claims
// into the request context. The raw token is kept alongside so handlers
// needing the authoritative user record can resolve it without re-parsing
// the Authorization header.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := auth.CurrentClaims(parts[1])
			if err != nil {
				// Taxonomy errors map to status codes centrally.
				return err
			}

			c.Set(CtxUsername, claims.Subject)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxToken, parts[1])

			return next(c)
		}
	}
}
