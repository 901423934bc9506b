package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/ports"
)

type stubReservationRepo struct {
	byCode   map[string]*domain.Reservation
	reserved map[string][]string // showtimeID -> seat ids
}

func newStubReservationRepo() *stubReservationRepo {
	return &stubReservationRepo{
		byCode:   make(map[string]*domain.Reservation),
		reserved: make(map[string][]string),
	}
}

func (r *stubReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	clone := *res
	clone.ID = res.Code
	r.byCode[res.Code] = &clone
	r.reserved[res.ShowtimeID] = append(r.reserved[res.ShowtimeID], res.SeatIDs...)
	out := clone
	return &out, nil
}

func (r *stubReservationRepo) FindByCode(_ context.Context, code string) (*domain.Reservation, error) {
	res, ok := r.byCode[code]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	clone := *res
	return &clone, nil
}

func (r *stubReservationRepo) List(_ context.Context, input ports.ListReservationsInput) ([]*domain.Reservation, int64, error) {
	out := make([]*domain.Reservation, 0, len(r.byCode))
	for _, res := range r.byCode {
		if input.Username != "" && res.Username != input.Username {
			continue
		}
		clone := *res
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubReservationRepo) ReservedSeatIDs(_ context.Context, showtimeID string) ([]string, error) {
	return r.reserved[showtimeID], nil
}

func (r *stubReservationRepo) Delete(_ context.Context, code string) error {
	res, ok := r.byCode[code]
	if !ok {
		return domain.ErrReservationNotFound
	}
	delete(r.byCode, code)

	remaining := r.reserved[res.ShowtimeID][:0]
	booked := make(map[string]struct{}, len(res.SeatIDs))
	for _, id := range res.SeatIDs {
		booked[id] = struct{}{}
	}
	for _, id := range r.reserved[res.ShowtimeID] {
		if _, ok := booked[id]; !ok {
			remaining = append(remaining, id)
		}
	}
	r.reserved[res.ShowtimeID] = remaining
	return nil
}

type stubShowtimeRepo struct {
	byID map[string]*domain.Showtime
}

func (r *stubShowtimeRepo) Create(_ context.Context, s *domain.Showtime) (*domain.Showtime, error) {
	r.byID[s.ID] = s
	return s, nil
}

func (r *stubShowtimeRepo) FindByID(_ context.Context, id string) (*domain.Showtime, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrShowtimeNotFound
	}
	return s, nil
}

func (r *stubShowtimeRepo) ListByMovie(_ context.Context, movieID string) ([]*domain.Showtime, error) {
	var out []*domain.Showtime
	for _, s := range r.byID {
		if s.MovieID == movieID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubShowtimeRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type stubHallRepo struct {
	seats map[string]*domain.Seat
}

func (r *stubHallRepo) FindByID(_ context.Context, id string) (*domain.CinemaHall, error) {
	return &domain.CinemaHall{ID: id}, nil
}

func (r *stubHallRepo) ListAll(_ context.Context) ([]*domain.CinemaHall, error) {
	return nil, nil
}

func (r *stubHallRepo) ListSeats(_ context.Context, hallID string) ([]*domain.Seat, error) {
	var out []*domain.Seat
	for _, seat := range r.seats {
		if seat.HallID == hallID {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (r *stubHallRepo) FindSeats(_ context.Context, seatIDs []string) ([]*domain.Seat, error) {
	var out []*domain.Seat
	for _, id := range seatIDs {
		if seat, ok := r.seats[id]; ok {
			out = append(out, seat)
		}
	}
	return out, nil
}

// stubSeatHolder mimics the Redis SetNX behaviour in memory.
type stubSeatHolder struct {
	holds map[string]string // showtimeID:seatID -> holder
}

func newStubSeatHolder() *stubSeatHolder {
	return &stubSeatHolder{holds: make(map[string]string)}
}

func (h *stubSeatHolder) Hold(_ context.Context, showtimeID, seatID, holder string, _ time.Duration) (bool, error) {
	key := showtimeID + ":" + seatID
	if _, taken := h.holds[key]; taken {
		return false, nil
	}
	h.holds[key] = holder
	return true, nil
}

func (h *stubSeatHolder) Release(_ context.Context, showtimeID, seatID string) error {
	delete(h.holds, showtimeID+":"+seatID)
	return nil
}

type reservationFixture struct {
	svc          ports.ReservationService
	reservations *stubReservationRepo
	holder       *stubSeatHolder
}

func newReservationFixture() *reservationFixture {
	showtimes := &stubShowtimeRepo{byID: map[string]*domain.Showtime{
		"st1": {ID: "st1", MovieID: "m1", HallID: "hall1"},
	}}
	halls := &stubHallRepo{seats: map[string]*domain.Seat{
		"a1": {ID: "a1", SeatCode: "A1", Price: 12.50, HallID: "hall1"},
		"a2": {ID: "a2", SeatCode: "A2", Price: 12.50, HallID: "hall1"},
		"b1": {ID: "b1", SeatCode: "B1", Price: 18.00, HallID: "hall1"},
		"z1": {ID: "z1", SeatCode: "Z1", Price: 10.00, HallID: "hall2"},
	}}
	reservations := newStubReservationRepo()
	holder := newStubSeatHolder()

	return &reservationFixture{
		svc:          NewReservationService(reservations, showtimes, halls, holder, zerolog.Nop()),
		reservations: reservations,
		holder:       holder,
	}
}

func TestReservationService_Create(t *testing.T) {
	f := newReservationFixture()

	res, err := f.svc.Create(context.Background(), ports.CreateReservationInput{
		UserID:     "u1",
		Username:   "alice",
		ShowtimeID: "st1",
		SeatIDs:    []string{"a1", "b1"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !strings.HasPrefix(res.Code, "RSV-") || len(res.Code) != 12 {
		t.Fatalf("unexpected code format: %q", res.Code)
	}
	if res.TotalAmount != 30.50 {
		t.Fatalf("total = %.2f, want 30.50", res.TotalAmount)
	}

	// Holds are released once the reservation is persisted.
	if len(f.holder.holds) != 0 {
		t.Fatalf("expected all holds released, %d remain", len(f.holder.holds))
	}
}

func TestReservationService_Create_NoSeats(t *testing.T) {
	f := newReservationFixture()

	_, err := f.svc.Create(context.Background(), ports.CreateReservationInput{
		Username:   "alice",
		ShowtimeID: "st1",
	})
	if !errors.Is(err, domain.ErrNoSeatsSelected) {
		t.Fatalf("expected ErrNoSeatsSelected, got %v", err)
	}
}

func TestReservationService_Create_UnknownShowtime(t *testing.T) {
	f := newReservationFixture()

	_, err := f.svc.Create(context.Background(), ports.CreateReservationInput{
		Username:   "alice",
		ShowtimeID: "missing",
		SeatIDs:    []string{"a1"},
	})
	if !errors.Is(err, domain.ErrShowtimeNotFound) {
		t.Fatalf("expected ErrShowtimeNotFound, got %v", err)
	}
}

func TestReservationService_Create_UnknownSeat(t *testing.T) {
	f := newReservationFixture()

	_, err := f.svc.Create(context.Background(), ports.CreateReservationInput{
		Username:   "alice",
		ShowtimeID: "st1",
		SeatIDs:    []string{"a1", "missing"},
	})
	if !errors.Is(err, domain.ErrSeatNotFound) {
		t.Fatalf("expected ErrSeatNotFound, got %v", err)
	}
}

// A seat that exists but belongs to a different hall than the showtime's
// is treated as unknown.
func TestReservationService_Create_SeatFromWrongHall(t *testing.T) {
	f := newReservationFixture()

	_, err := f.svc.Create(context.Background(), ports.CreateReservationInput{
		Username:   "alice",
		ShowtimeID: "st1",
		SeatIDs:    []string{"z1"},
	})
	if !errors.Is(err, domain.ErrSeatNotFound) {
		t.Fatalf("expected ErrSeatNotFound, got %v", err)
	}
}

func TestReservationService_Create_SeatAlreadyBooked(t *testing.T) {
	f := newReservationFixture()

	if _, err := f.svc.Create(context.Background(), ports.CreateReservationInput{
		Username:   "alice",
		ShowtimeID: "st1",
		SeatIDs:    []string{"a1"},
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := f.svc.Create(context.Background(), ports.CreateReservationInput{
		Username:   "mallory",
		ShowtimeID: "st1",
		SeatIDs:    []string{"a1"},
	})
	if !errors.Is(err, domain.ErrSeatUnavailable) {
		t.Fatalf("expected ErrSeatUnavailable, got %v", err)
	}
}

// A hold taken by a concurrent booking rejects the request before the
// store is consulted.
func TestReservationService_Create_SeatHeldByOther(t *testing.T) {
	f := newReservationFixture()

	if ok, err := f.holder.Hold(context.Background(), "st1", "a1", "mallory", time.Minute); err != nil || !ok {
		t.Fatalf("seed hold: ok=%v err=%v", ok, err)
	}

	_, err := f.svc.Create(context.Background(), ports.CreateReservationInput{
		Username:   "alice",
		ShowtimeID: "st1",
		SeatIDs:    []string{"a1"},
	})
	if !errors.Is(err, domain.ErrSeatHeld) {
		t.Fatalf("expected ErrSeatHeld, got %v", err)
	}

	// The foreign hold must survive the failed attempt.
	if holder := f.holder.holds["st1:a1"]; holder != "mallory" {
		t.Fatalf("foreign hold lost, holder = %q", holder)
	}
}

func TestReservationService_Get_Ownership(t *testing.T) {
	f := newReservationFixture()

	res, err := f.svc.Create(context.Background(), ports.CreateReservationInput{
		Username:   "alice",
		ShowtimeID: "st1",
		SeatIDs:    []string{"a1"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.Get(context.Background(), res.Code, "alice", domain.RoleCustomer); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if _, err := f.svc.Get(context.Background(), res.Code, "mallory", domain.RoleCustomer); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	// Staff can read any reservation.
	if _, err := f.svc.Get(context.Background(), res.Code, "steve", domain.RoleStaff); err != nil {
		t.Fatalf("staff read: %v", err)
	}
}

func TestReservationService_Cancel(t *testing.T) {
	f := newReservationFixture()

	res, err := f.svc.Create(context.Background(), ports.CreateReservationInput{
		Username:   "alice",
		ShowtimeID: "st1",
		SeatIDs:    []string{"a1"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.Cancel(context.Background(), res.Code, "mallory", domain.RoleCustomer); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := f.svc.Cancel(context.Background(), res.Code, "alice", domain.RoleCustomer); err != nil {
		t.Fatalf("owner cancel: %v", err)
	}

	// Cancelling frees the seat for rebooking.
	if _, err := f.svc.Create(context.Background(), ports.CreateReservationInput{
		Username:   "mallory",
		ShowtimeID: "st1",
		SeatIDs:    []string{"a1"},
	}); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestReservationService_Cancel_NotFound(t *testing.T) {
	f := newReservationFixture()

	if err := f.svc.Cancel(context.Background(), "RSV-MISSING1", "alice", domain.RoleCustomer); !errors.Is(err, domain.ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
}
