package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/ports"
)

var ErrInvalidTimeWindow = errors.New("showtime end must be after start")

type showtimeService struct {
	showtimes    ports.ShowtimeRepository
	movies       ports.MovieRepository
	halls        ports.HallRepository
	reservations ports.ReservationRepository
	log          zerolog.Logger
}

// NewShowtimeService returns a ShowtimeService implementation.
func NewShowtimeService(
	showtimes ports.ShowtimeRepository,
	movies ports.MovieRepository,
	halls ports.HallRepository,
	reservations ports.ReservationRepository,
	log zerolog.Logger,
) ports.ShowtimeService {
	return &showtimeService{
		showtimes:    showtimes,
		movies:       movies,
		halls:        halls,
		reservations: reservations,
		log:          log,
	}
}

func (s *showtimeService) Create(ctx context.Context, input ports.CreateShowtimeInput) (*domain.Showtime, error) {
	if !input.EndTime.After(input.StartTime) {
		return nil, ErrInvalidTimeWindow
	}

	// Both references must resolve before scheduling.
	if _, err := s.movies.FindByID(ctx, input.MovieID); err != nil {
		return nil, err
	}
	if _, err := s.halls.FindByID(ctx, input.HallID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.showtimes.Create(ctx, &domain.Showtime{
		MovieID:   input.MovieID,
		HallID:    input.HallID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("movie_id", input.MovieID).
		Str("hall_id", input.HallID).
		Time("start_time", input.StartTime).
		Msg("showtime scheduled")
	return created, nil
}

func (s *showtimeService) Halls(ctx context.Context) ([]*domain.CinemaHall, error) {
	return s.halls.ListAll(ctx)
}

func (s *showtimeService) Get(ctx context.Context, id string) (*domain.Showtime, error) {
	return s.showtimes.FindByID(ctx, id)
}

func (s *showtimeService) ListByMovie(ctx context.Context, movieID string) ([]*domain.Showtime, error) {
	return s.showtimes.ListByMovie(ctx, movieID)
}

// Seats returns the showtime hall's seats, each flagged reserved when an
// existing reservation already claims it.
func (s *showtimeService) Seats(ctx context.Context, showtimeID string) ([]ports.SeatAvailability, error) {
	showtime, err := s.showtimes.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	seats, err := s.halls.ListSeats(ctx, showtime.HallID)
	if err != nil {
		return nil, err
	}

	reservedIDs, err := s.reservations.ReservedSeatIDs(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	reserved := make(map[string]struct{}, len(reservedIDs))
	for _, id := range reservedIDs {
		reserved[id] = struct{}{}
	}

	out := make([]ports.SeatAvailability, 0, len(seats))
	for _, seat := range seats {
		_, taken := reserved[seat.ID]
		out = append(out, ports.SeatAvailability{Seat: *seat, Reserved: taken})
	}
	return out, nil
}

func (s *showtimeService) Delete(ctx context.Context, id string) error {
	return s.showtimes.Delete(ctx, id)
}
