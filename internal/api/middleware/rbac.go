package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/cineplex/reservation-system/internal/core/domain"
)

// RequireRoles enforces role-based access control. The check is pure set
// membership: admin does not implicitly satisfy a staff-only route unless
// listed explicitly.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrUnauthorized
			}
			return next(c)
		}
	}
}
