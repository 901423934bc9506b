package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/ports"
)

// ReservationHandler handles seat booking endpoints.
type ReservationHandler struct {
	reservations ports.ReservationService
	auth         ports.AuthService
}

func NewReservationHandler(reservations ports.ReservationService, auth ports.AuthService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, auth: auth}
}

type createReservationRequest struct {
	ShowtimeID string   `json:"showtime_id" validate:"required"`
	SeatIDs    []string `json:"seat_ids"    validate:"required,min=1,dive,required"`
}

type listReservationsResponse struct {
	Items      []*domain.Reservation `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
}

// Create books seats for the authenticated user. The user record is
// resolved authoritatively: a deactivated account must not book even
// with a still-valid access token.
//
// @Summary      Create a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReservationRequest  true  "Booking details"
// @Success      201   {object}  domain.Reservation
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	tok, err := ctxToken(c)
	if err != nil {
		return err
	}

	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.CurrentUser(c.Request().Context(), tok)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return domain.ErrUserInactive
	}

	reservation, err := h.reservations.Create(c.Request().Context(), ports.CreateReservationInput{
		UserID:     user.ID,
		Username:   user.Username,
		ShowtimeID: req.ShowtimeID,
		SeatIDs:    req.SeatIDs,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, reservation)
}

// List returns reservations. Customers are always scoped to their own;
// staff and admin may pass ?username= to scope, or omit it for all.
//
// @Summary      List reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        username  query     string  false  "Filter by username (staff/admin only)"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listReservationsResponse
// @Failure      401       {object}  errorResponse
// @Router       /v1/reservations [get]
func (h *ReservationHandler) List(c echo.Context) error {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	scope := username
	if role != domain.RoleCustomer {
		scope = c.QueryParam("username")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.reservations.List(c.Request().Context(), ports.ListReservationsInput{
		Username: scope,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listReservationsResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get returns a reservation by code, enforcing ownership for customers.
//
// @Summary      Get a reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string  true  "Reservation code (e.g. RSV-7A8B9C2D)"
// @Success      200   {object}  domain.Reservation
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/reservations/{code} [get]
func (h *ReservationHandler) Get(c echo.Context) error {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	reservation, err := h.reservations.Get(c.Request().Context(), c.Param("code"), username, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reservation)
}

// Cancel deletes a reservation, enforcing ownership for customers.
//
// @Summary      Cancel a reservation
// @Tags         reservations
// @Security     BearerAuth
// @Param        code  path  string  true  "Reservation code"
// @Success      204   "no content"
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/reservations/{code} [delete]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.reservations.Cancel(c.Request().Context(), c.Param("code"), username, role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
