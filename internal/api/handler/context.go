package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cineplex/reservation-system/internal/api/middleware"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails when it is absent: a non-empty username proves the
// middleware ran on this route.
func ctxIdentity(c echo.Context) (username, role string, err error) {
	username, _ = c.Get(middleware.CtxUsername).(string)
	if username == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get(middleware.CtxRole).(string)
	return username, role, nil
}

// ctxToken returns the raw access token stored by the Auth middleware,
// for handlers that need the authoritative (re-fetched) user record.
func ctxToken(c echo.Context) (string, error) {
	tok, _ := c.Get(middleware.CtxToken).(string)
	if tok == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return tok, nil
}
