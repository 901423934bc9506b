package ports

import (
	"context"
	"time"

	"github.com/cineplex/reservation-system/internal/core/domain"
)

// CreateMovieInput carries all data needed to add a movie to the catalogue.
type CreateMovieInput struct {
	Title           string
	Description     string
	DurationMinutes int
	ReleaseDate     time.Time
	PosterURL       string
	Genres          []string
}

// UpdateMovieInput carries partial catalogue changes. Nil fields are untouched.
type UpdateMovieInput struct {
	Title           *string
	Description     *string
	DurationMinutes *int
	ReleaseDate     *time.Time
	PosterURL       *string
	Genres          []string
}

// ListMoviesInput carries the query parameters for the catalogue listing.
type ListMoviesInput struct {
	Genre  string
	Search string
	Page   int
	Limit  int
}

// ListMoviesResult is returned by ListMovies.
type ListMoviesResult struct {
	Items      []*domain.Movie
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// MovieRepository defines persistence operations for movies.
type MovieRepository interface {
	Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error)
	FindByID(ctx context.Context, id string) (*domain.Movie, error)
	FindByTitle(ctx context.Context, title string) (*domain.Movie, error)
	List(ctx context.Context, input ListMoviesInput) ([]*domain.Movie, int64, error)
	Update(ctx context.Context, id string, update UpdateMovieInput) (*domain.Movie, error)
	Delete(ctx context.Context, id string) error
}

// MovieService defines use-case operations for the movie catalogue.
type MovieService interface {
	Create(ctx context.Context, input CreateMovieInput) (*domain.Movie, error)
	Get(ctx context.Context, id string) (*domain.Movie, error)
	List(ctx context.Context, input ListMoviesInput) (*ListMoviesResult, error)
	Update(ctx context.Context, id string, update UpdateMovieInput) (*domain.Movie, error)
	Delete(ctx context.Context, id string) error
}
