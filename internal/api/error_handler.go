package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/service"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the authentication/authorization taxonomy and the domain errors
//     to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Authentication/authorization taxonomy → deterministic HTTP codes.
	// Token expiry keeps its own message so clients know to run the
	// refresh flow; everything credential-shaped stays generic.
	switch {
	case errors.Is(err, domain.ErrWrongCredentials):
		return http.StatusUnauthorized, "wrong credentials"
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, domain.ErrInvalidTokenType):
		return http.StatusUnauthorized, "invalid token type"
	case errors.Is(err, domain.ErrInvalidTokenData):
		return http.StatusBadRequest, "invalid token data"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "authorization failed"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "inactive user"
	}

	// Domain errors.
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrMovieNotFound):
		return http.StatusNotFound, "movie not found"
	case errors.Is(err, domain.ErrMovieExists):
		return http.StatusConflict, "movie already exists"
	case errors.Is(err, domain.ErrShowtimeNotFound):
		return http.StatusNotFound, "showtime not found"
	case errors.Is(err, domain.ErrHallNotFound):
		return http.StatusNotFound, "cinema hall not found"
	case errors.Is(err, domain.ErrReservationNotFound):
		return http.StatusNotFound, "reservation not found"
	case errors.Is(err, domain.ErrSeatNotFound):
		return http.StatusUnprocessableEntity, "seat not found in showtime hall"
	case errors.Is(err, domain.ErrSeatUnavailable):
		return http.StatusConflict, "seat already reserved"
	case errors.Is(err, domain.ErrSeatHeld):
		return http.StatusConflict, "seat temporarily held, retry shortly"
	case errors.Is(err, domain.ErrNoSeatsSelected):
		return http.StatusBadRequest, "no seats selected"
	case errors.Is(err, service.ErrInvalidTimeWindow):
		return http.StatusBadRequest, "showtime end must be after start"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
