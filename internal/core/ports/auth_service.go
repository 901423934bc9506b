package ports

import (
	"context"

	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/token"
)

// AuthService is the authentication contract consumed by the HTTP layer.
//
// CurrentClaims and CurrentUser are the two supported resolution modes
// for an access token: claims-only (no storage round-trip, enough for a
// role check) and authoritative (re-fetches the user record).
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.TokenPair, error)
	// Refresh redeems a refresh token for a new access token. The role is
	// re-derived from the current user record, never from the old token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	CurrentClaims(tokenString string) (*token.Claims, error)
	CurrentUser(ctx context.Context, tokenString string) (*domain.User, error)
}
