package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/ports"
)

// MovieHandler handles the movie catalogue endpoints.
type MovieHandler struct {
	movies ports.MovieService
}

func NewMovieHandler(movies ports.MovieService) *MovieHandler {
	return &MovieHandler{movies: movies}
}

type createMovieRequest struct {
	Title           string    `json:"title"            validate:"required,max=100"`
	Description     string    `json:"description"      validate:"omitempty,max=255"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gt=0"`
	ReleaseDate     time.Time `json:"release_date"     validate:"required"`
	PosterURL       string    `json:"poster_url"       validate:"required,url,max=2048"`
	Genres          []string  `json:"genres"`
}

type updateMovieRequest struct {
	Title           *string    `json:"title"            validate:"omitempty,max=100"`
	Description     *string    `json:"description"      validate:"omitempty,max=255"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,gt=0"`
	ReleaseDate     *time.Time `json:"release_date"`
	PosterURL       *string    `json:"poster_url"       validate:"omitempty,url,max=2048"`
	Genres          []string   `json:"genres"`
}

type listMoviesResponse struct {
	Items      []*domain.Movie `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// Create adds a movie to the catalogue.
//
// @Summary      Create a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMovieRequest  true  "Movie details"
// @Success      201   {object}  domain.Movie
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	var req createMovieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	movie, err := h.movies.Create(c.Request().Context(), ports.CreateMovieInput{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		ReleaseDate:     req.ReleaseDate,
		PosterURL:       req.PosterURL,
		Genres:          req.Genres,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, movie)
}

// List returns a page of the catalogue, optionally filtered.
//
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Param        genre   query     string  false  "Filter by genre"
// @Param        search  query     string  false  "Title search"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listMoviesResponse
// @Router       /v1/movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.movies.List(c.Request().Context(), ports.ListMoviesInput{
		Genre:  c.QueryParam("genre"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listMoviesResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get returns a single movie.
//
// @Summary      Get a movie
// @Tags         movies
// @Produce      json
// @Param        id   path      string  true  "Movie id"
// @Success      200  {object}  domain.Movie
// @Failure      404  {object}  errorResponse
// @Router       /v1/movies/{id} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	movie, err := h.movies.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movie)
}

// Update applies partial changes to a movie.
//
// @Summary      Update a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Movie id"
// @Param        body  body      updateMovieRequest  true  "Changes"
// @Success      200   {object}  domain.Movie
// @Failure      404   {object}  errorResponse
// @Router       /v1/movies/{id} [patch]
func (h *MovieHandler) Update(c echo.Context) error {
	var req updateMovieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	movie, err := h.movies.Update(c.Request().Context(), c.Param("id"), ports.UpdateMovieInput{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		ReleaseDate:     req.ReleaseDate,
		PosterURL:       req.PosterURL,
		Genres:          req.Genres,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, movie)
}

// Delete removes a movie from the catalogue.
//
// @Summary      Delete a movie
// @Tags         movies
// @Security     BearerAuth
// @Param        id  path  string  true  "Movie id"
// @Success      204 "no content"
// @Failure      404 {object}  errorResponse
// @Router       /v1/movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	if err := h.movies.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
