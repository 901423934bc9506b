package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/password"
	"github.com/cineplex/reservation-system/internal/core/ports"
	"github.com/cineplex/reservation-system/internal/core/roles"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type userService struct {
	repo     ports.UserRepository
	hasher   password.Hasher
	registry *roles.Registry
	log      zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(
	repo ports.UserRepository,
	hasher password.Hasher,
	registry *roles.Registry,
	log zerolog.Logger,
) ports.UserService {
	return &userService{repo: repo, hasher: hasher, registry: registry, log: log}
}

// Register creates a customer account. The role cannot be chosen by the
// caller; staff and admin accounts are provisioned out of band.
func (s *userService) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	roleID, ok := s.registry.IDOf(domain.RoleCustomer)
	if !ok {
		return nil, domain.ErrRoleNotFound
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		IsActive:     true,
		RoleID:       roleID,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	return s.repo.Update(ctx, id, update)
}

// Deactivate flips the account inactive. Tokens already in flight keep
// working until they expire; the refresh flow re-checks the flag.
func (s *userService) Deactivate(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.SetActive(ctx, id, false)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", user.Username).Msg("user deactivated")
	return user, nil
}

func (s *userService) List(ctx context.Context, page, limit int) (*ports.ListUsersResult, error) {
	page, limit = normalizePage(page, limit)

	items, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 && total > 0 {
		pages = 1
	}
	return pages
}
