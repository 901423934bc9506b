package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/ports"
)

// ShowtimeHandler handles showtime scheduling and seat availability.
type ShowtimeHandler struct {
	showtimes ports.ShowtimeService
}

func NewShowtimeHandler(showtimes ports.ShowtimeService) *ShowtimeHandler {
	return &ShowtimeHandler{showtimes: showtimes}
}

type createShowtimeRequest struct {
	MovieID   string    `json:"movie_id"   validate:"required"`
	HallID    string    `json:"hall_id"    validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time"   validate:"required"`
}

// Create schedules a movie in a hall.
//
// @Summary      Create a showtime
// @Tags         showtimes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShowtimeRequest  true  "Showtime details"
// @Success      201   {object}  domain.Showtime
// @Failure      404   {object}  errorResponse
// @Router       /v1/showtimes [post]
func (h *ShowtimeHandler) Create(c echo.Context) error {
	var req createShowtimeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	showtime, err := h.showtimes.Create(c.Request().Context(), ports.CreateShowtimeInput{
		MovieID:   req.MovieID,
		HallID:    req.HallID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, showtime)
}

// Get returns a single showtime.
//
// @Summary      Get a showtime
// @Tags         showtimes
// @Produce      json
// @Param        id   path      string  true  "Showtime id"
// @Success      200  {object}  domain.Showtime
// @Failure      404  {object}  errorResponse
// @Router       /v1/showtimes/{id} [get]
func (h *ShowtimeHandler) Get(c echo.Context) error {
	showtime, err := h.showtimes.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, showtime)
}

// ListByMovie returns all showtimes scheduled for a movie.
//
// @Summary      List showtimes for a movie
// @Tags         showtimes
// @Produce      json
// @Param        id   path      string  true  "Movie id"
// @Success      200  {array}   domain.Showtime
// @Router       /v1/movies/{id}/showtimes [get]
func (h *ShowtimeHandler) ListByMovie(c echo.Context) error {
	showtimes, err := h.showtimes.ListByMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if showtimes == nil {
		showtimes = []*domain.Showtime{}
	}
	return c.JSON(http.StatusOK, showtimes)
}

// Seats returns the showtime hall's seats with their booking state.
//
// @Summary      List seat availability for a showtime
// @Tags         showtimes
// @Produce      json
// @Param        id   path      string  true  "Showtime id"
// @Success      200  {array}   ports.SeatAvailability
// @Failure      404  {object}  errorResponse
// @Router       /v1/showtimes/{id}/seats [get]
func (h *ShowtimeHandler) Seats(c echo.Context) error {
	seats, err := h.showtimes.Seats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, seats)
}

// Halls lists all cinema halls.
//
// @Summary      List cinema halls
// @Tags         showtimes
// @Produce      json
// @Success      200  {array}  domain.CinemaHall
// @Router       /v1/halls [get]
func (h *ShowtimeHandler) Halls(c echo.Context) error {
	halls, err := h.showtimes.Halls(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, halls)
}

// Delete removes a showtime.
//
// @Summary      Delete a showtime
// @Tags         showtimes
// @Security     BearerAuth
// @Param        id  path  string  true  "Showtime id"
// @Success      204 "no content"
// @Failure      404 {object}  errorResponse
// @Router       /v1/showtimes/{id} [delete]
func (h *ShowtimeHandler) Delete(c echo.Context) error {
	if err := h.showtimes.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
