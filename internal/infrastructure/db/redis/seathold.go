package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SeatHolder provides short-lived seat claims backed by Redis SETNX.
// Key format: seat_hold:<showtime_id>:<seat_id>, value = holding username.
// The TTL guarantees abandoned holds free themselves.
type SeatHolder struct {
	client *redis.Client
}

// NewSeatHolder creates a SeatHolder wrapping the given Redis client.
func NewSeatHolder(client *redis.Client) *SeatHolder {
	return &SeatHolder{client: client}
}

// Hold attempts to claim the seat for holder. It reports false when the
// seat is already claimed by another booking in flight.
func (h *SeatHolder) Hold(ctx context.Context, showtimeID, seatID, holder string, ttl time.Duration) (bool, error) {
	ok, err := h.client.SetNX(ctx, h.key(showtimeID, seatID), holder, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("seat hold: %w", err)
	}
	return ok, nil
}

// Release frees the seat claim. Safe to call on an expired hold.
func (h *SeatHolder) Release(ctx context.Context, showtimeID, seatID string) error {
	return h.client.Del(ctx, h.key(showtimeID, seatID)).Err()
}

func (h *SeatHolder) key(showtimeID, seatID string) string {
	return fmt.Sprintf("seat_hold:%s:%s", showtimeID, seatID)
}
