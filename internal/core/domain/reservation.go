package domain

import (
	"errors"
	"time"
)

var ErrReservationNotFound = errors.New("reservation not found")
var ErrSeatNotFound = errors.New("seat not found")
var ErrSeatUnavailable = errors.New("seat already reserved")
var ErrSeatHeld = errors.New("seat temporarily held by another reservation")
var ErrNoSeatsSelected = errors.New("no seats selected")

// Seat belongs to a cinema hall and carries its own price.
type Seat struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	SeatCode  string    `json:"seat_code" bson:"seat_code"`
	Price     float64   `json:"price" bson:"price"`
	HallID    string    `json:"hall_id" bson:"hall_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Reservation books one or more seats for a showtime on behalf of a user.
// TotalAmount is the sum of the reserved seat prices at booking time.
type Reservation struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Code        string    `json:"code" bson:"code"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Username    string    `json:"username" bson:"username"`
	ShowtimeID  string    `json:"showtime_id" bson:"showtime_id"`
	SeatIDs     []string  `json:"seat_ids" bson:"seat_ids"`
	TotalAmount float64   `json:"total_amount" bson:"total_amount"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
