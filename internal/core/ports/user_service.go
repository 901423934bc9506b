package ports

import (
	"context"

	"github.com/cineplex/reservation-system/internal/core/domain"
)

// RegisterUserInput carries the data for self-registration. The role is
// not part of the input: self-registered accounts are always customers.
type RegisterUserInput struct {
	Username    string
	Password    string
	Email       string
	PhoneNumber string
	FirstName   string
	LastName    string
}

// ListUsersResult is returned by the admin user listing.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines use-case operations on user accounts.
type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	Deactivate(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, page, limit int) (*ListUsersResult, error)
}
