package ports

import (
	"context"
	"time"

	"github.com/cineplex/reservation-system/internal/core/domain"
)

// CreateReservationInput books seats for a showtime on behalf of a user.
type CreateReservationInput struct {
	UserID     string
	Username   string
	ShowtimeID string
	SeatIDs    []string
}

// ListReservationsInput carries the query parameters for listing reservations.
// Username is enforced by the service layer: customers only see their own.
type ListReservationsInput struct {
	Username string
	Page     int
	Limit    int
}

// ListReservationsResult is returned by reservation listings.
type ListReservationsResult struct {
	Items      []*domain.Reservation
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ReservationRepository defines persistence operations for reservations.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	FindByCode(ctx context.Context, code string) (*domain.Reservation, error)
	List(ctx context.Context, input ListReservationsInput) ([]*domain.Reservation, int64, error)
	// ReservedSeatIDs returns the ids of every seat already booked for the showtime.
	ReservedSeatIDs(ctx context.Context, showtimeID string) ([]string, error)
	Delete(ctx context.Context, code string) error
}

// SeatHolder coordinates concurrent bookings: a hold marks a seat as
// claimed for the duration of the booking transaction, closing the
// check-then-insert race between two requests for the same seat.
type SeatHolder interface {
	// Hold claims the seat for holder. Returns false when another holder
	// already claimed it.
	Hold(ctx context.Context, showtimeID, seatID, holder string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, showtimeID, seatID string) error
}

// ReservationService defines use-case operations for reservations.
type ReservationService interface {
	Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	// Get enforces ownership: customers may only fetch their own reservation.
	Get(ctx context.Context, code string, requester string, requesterRole string) (*domain.Reservation, error)
	List(ctx context.Context, input ListReservationsInput) (*ListReservationsResult, error)
	Cancel(ctx context.Context, code string, requester string, requesterRole string) error
}
