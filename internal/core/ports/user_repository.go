package ports

import (
	"context"

	"github.com/cineplex/reservation-system/internal/core/domain"
)

// UserUpdate carries partial profile changes. Nil fields are untouched.
type UserUpdate struct {
	Email       *string
	PhoneNumber *string
	FirstName   *string
	LastName    *string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.User, error)
	// List returns a page of users and the total count.
	List(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
}
