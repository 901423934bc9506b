package ports

import (
	"context"
	"time"

	"github.com/cineplex/reservation-system/internal/core/domain"
)

// CreateShowtimeInput schedules a movie in a hall.
type CreateShowtimeInput struct {
	MovieID   string
	HallID    string
	StartTime time.Time
	EndTime   time.Time
}

// SeatAvailability is one seat of a showtime's hall plus its booking state.
type SeatAvailability struct {
	Seat     domain.Seat `json:"seat"`
	Reserved bool        `json:"reserved"`
}

// ShowtimeRepository defines persistence operations for showtimes.
type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *domain.Showtime) (*domain.Showtime, error)
	FindByID(ctx context.Context, id string) (*domain.Showtime, error)
	ListByMovie(ctx context.Context, movieID string) ([]*domain.Showtime, error)
	Delete(ctx context.Context, id string) error
}

// HallRepository reads cinema halls and their seats.
type HallRepository interface {
	FindByID(ctx context.Context, id string) (*domain.CinemaHall, error)
	ListAll(ctx context.Context) ([]*domain.CinemaHall, error)
	ListSeats(ctx context.Context, hallID string) ([]*domain.Seat, error)
	FindSeats(ctx context.Context, seatIDs []string) ([]*domain.Seat, error)
}

// ShowtimeService defines use-case operations for showtimes and halls.
type ShowtimeService interface {
	Create(ctx context.Context, input CreateShowtimeInput) (*domain.Showtime, error)
	Halls(ctx context.Context) ([]*domain.CinemaHall, error)
	Get(ctx context.Context, id string) (*domain.Showtime, error)
	ListByMovie(ctx context.Context, movieID string) ([]*domain.Showtime, error)
	// Seats returns every seat of the showtime's hall with its booking state.
	Seats(ctx context.Context, showtimeID string) ([]SeatAvailability, error)
	Delete(ctx context.Context, id string) error
}
