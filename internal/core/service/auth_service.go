package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/password"
	"github.com/cineplex/reservation-system/internal/core/ports"
	"github.com/cineplex/reservation-system/internal/core/token"
)

// AuthService implements credential checks and the token lifecycle.
// It holds no mutable state: every call is a pure function of its inputs
// plus the immutable keys and TTLs behind the factory and verifier.
type AuthService struct {
	users    ports.UserRepository
	hasher   password.Hasher
	factory  *token.Factory
	verifier *token.Verifier
	log      zerolog.Logger

	// dummyHash is compared against when the user lookup misses, so a
	// failed lookup costs the same as a failed password check.
	dummyHash string
}

func NewAuthService(
	users ports.UserRepository,
	hasher password.Hasher,
	factory *token.Factory,
	verifier *token.Verifier,
	log zerolog.Logger,
) *AuthService {
	dummyHash, _ := hasher.Hash("equalize-verification-timing")
	return &AuthService{
		users:     users,
		hasher:    hasher,
		factory:   factory,
		verifier:  verifier,
		log:       log,
		dummyHash: dummyHash,
	}
}

// Authenticate checks username and password against the user store.
// Lookup miss and password mismatch both surface as ErrWrongCredentials;
// a deactivated account with a correct password surfaces as ErrUserInactive.
func (s *AuthService) Authenticate(ctx context.Context, username, plaintext string) (*domain.User, error) {
	if username == "" || plaintext == "" {
		return nil, domain.ErrWrongCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(plaintext, s.dummyHash)
			return nil, domain.ErrWrongCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		return nil, domain.ErrWrongCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	return user, nil
}

// Login authenticates and mints an access + refresh token pair.
func (s *AuthService) Login(ctx context.Context, username, plaintext string) (*domain.TokenPair, error) {
	user, err := s.Authenticate(ctx, username, plaintext)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.factory.AccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.factory.RefreshToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(s.factory.AccessTTL()),
	}, nil
}

// Refresh redeems a refresh token for a new access token. The user is
// re-fetched so the minted token reflects the current role and active
// flag, not the state at original login time.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.verifier.Verify(refreshToken, token.TypeRefresh)
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrWrongCredentials
		}
		return "", err
	}

	if !user.IsActive {
		return "", domain.ErrUserInactive
	}

	return s.factory.AccessToken(user)
}

// CurrentClaims resolves an access token to its claims without touching
// storage. Enough for role checks; profile data requires CurrentUser.
func (s *AuthService) CurrentClaims(tokenString string) (*token.Claims, error) {
	return s.verifier.Verify(tokenString, token.TypeAccess)
}

// CurrentUser resolves an access token to the authoritative user record.
func (s *AuthService) CurrentUser(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.verifier.Verify(tokenString, token.TypeAccess)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrWrongCredentials
		}
		return nil, err
	}

	return user, nil
}
