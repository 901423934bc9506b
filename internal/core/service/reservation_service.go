package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cineplex/reservation-system/internal/api/metrics"
	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/ports"
)

// seatHoldTTL bounds how long a booking transaction may keep seats
// claimed. Holds are released explicitly on completion; the TTL only
// covers crashed or abandoned transactions.
const seatHoldTTL = 2 * time.Minute

type reservationService struct {
	reservations ports.ReservationRepository
	showtimes    ports.ShowtimeRepository
	halls        ports.HallRepository
	holder       ports.SeatHolder
	log          zerolog.Logger
}

// NewReservationService returns a ReservationService implementation.
func NewReservationService(
	reservations ports.ReservationRepository,
	showtimes ports.ShowtimeRepository,
	halls ports.HallRepository,
	holder ports.SeatHolder,
	log zerolog.Logger,
) ports.ReservationService {
	return &reservationService{
		reservations: reservations,
		showtimes:    showtimes,
		halls:        halls,
		holder:       holder,
		log:          log,
	}
}

// Create books the requested seats. Seat holds are taken before the
// availability check so two concurrent requests for the same seat cannot
// both pass it; once the reservation is persisted the store is
// authoritative and the holds are released.
func (s *reservationService) Create(ctx context.Context, input ports.CreateReservationInput) (*domain.Reservation, error) {
	if len(input.SeatIDs) == 0 {
		return nil, domain.ErrNoSeatsSelected
	}

	// 1. The showtime must exist; its hall scopes the seats.
	showtime, err := s.showtimes.FindByID(ctx, input.ShowtimeID)
	if err != nil {
		return nil, err
	}

	// 2. Every requested seat must exist and belong to the showtime's hall.
	seats, err := s.halls.FindSeats(ctx, input.SeatIDs)
	if err != nil {
		return nil, err
	}
	if len(seats) != len(input.SeatIDs) {
		return nil, domain.ErrSeatNotFound
	}
	for _, seat := range seats {
		if seat.HallID != showtime.HallID {
			return nil, domain.ErrSeatNotFound
		}
	}

	// 3. Claim holds on every seat before checking persisted bookings.
	held := make([]string, 0, len(input.SeatIDs))
	defer func() {
		for _, seatID := range held {
			if err := s.holder.Release(ctx, input.ShowtimeID, seatID); err != nil {
				s.log.Warn().Err(err).Str("seat_id", seatID).Msg("failed to release seat hold")
			}
		}
	}()
	for _, seatID := range input.SeatIDs {
		ok, err := s.holder.Hold(ctx, input.ShowtimeID, seatID, input.Username, seatHoldTTL)
		if err != nil {
			return nil, fmt.Errorf("seat hold: %w", err)
		}
		if !ok {
			metrics.SeatHoldConflictsTotal.Inc()
			return nil, domain.ErrSeatHeld
		}
		held = append(held, seatID)
	}

	// 4. With holds in place, persisted bookings cannot change underneath us.
	reservedIDs, err := s.reservations.ReservedSeatIDs(ctx, input.ShowtimeID)
	if err != nil {
		return nil, err
	}
	reserved := make(map[string]struct{}, len(reservedIDs))
	for _, id := range reservedIDs {
		reserved[id] = struct{}{}
	}
	for _, seatID := range input.SeatIDs {
		if _, taken := reserved[seatID]; taken {
			return nil, domain.ErrSeatUnavailable
		}
	}

	// 5. Price is the sum of seat prices at booking time.
	var total float64
	for _, seat := range seats {
		total += seat.Price
	}

	now := time.Now().UTC()
	reservation := &domain.Reservation{
		Code:        generateReservationCode(),
		UserID:      input.UserID,
		Username:    input.Username,
		ShowtimeID:  input.ShowtimeID,
		SeatIDs:     input.SeatIDs,
		TotalAmount: total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.reservations.Create(ctx, reservation)
	if err != nil {
		return nil, err
	}

	metrics.ReservationsCreatedTotal.Inc()
	s.log.Info().
		Str("code", created.Code).
		Str("username", input.Username).
		Str("showtime_id", input.ShowtimeID).
		Int("seats", len(input.SeatIDs)).
		Msg("reservation created")

	return created, nil
}

// Get returns a reservation by code. Customers may only read their own.
func (s *reservationService) Get(ctx context.Context, code, requester, requesterRole string) (*domain.Reservation, error) {
	reservation, err := s.reservations.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if requesterRole == domain.RoleCustomer && reservation.Username != requester {
		return nil, domain.ErrUnauthorized
	}
	return reservation, nil
}

func (s *reservationService) List(ctx context.Context, input ports.ListReservationsInput) (*ports.ListReservationsResult, error) {
	input.Page, input.Limit = normalizePage(input.Page, input.Limit)

	items, total, err := s.reservations.List(ctx, input)
	if err != nil {
		return nil, err
	}

	return &ports.ListReservationsResult{
		Items:      items,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages(total, input.Limit),
	}, nil
}

// Cancel deletes a reservation, freeing its seats. Ownership rules match Get.
func (s *reservationService) Cancel(ctx context.Context, code, requester, requesterRole string) error {
	reservation, err := s.reservations.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if requesterRole == domain.RoleCustomer && reservation.Username != requester {
		return domain.ErrUnauthorized
	}

	if err := s.reservations.Delete(ctx, code); err != nil {
		return err
	}

	s.log.Info().Str("code", code).Str("requested_by", requester).Msg("reservation cancelled")
	return nil
}

// generateReservationCode returns a customer-facing code in the format RSV-XXXXXXXX.
func generateReservationCode() string {
	id := uuid.NewString()
	return fmt.Sprintf("RSV-%s", strings.ToUpper(id[:8]))
}
