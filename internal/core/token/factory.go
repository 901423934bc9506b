package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/roles"
)

// Factory mints access and refresh tokens for a user. TTLs are fixed at
// construction from configuration; the refresh TTL should dwarf the
// access TTL (defaults: 60 minutes vs 30 days).
type Factory struct {
	codec      *Codec
	registry   *roles.Registry
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewFactory(codec *Codec, registry *roles.Registry, issuer string, accessTTL, refreshTTL time.Duration) *Factory {
	return &Factory{
		codec:      codec,
		registry:   registry,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL exposes the configured access token lifetime so callers can
// report expirations without re-deriving them.
func (f *Factory) AccessTTL() time.Duration { return f.accessTTL }

// RefreshTTL exposes the configured refresh token lifetime, used to set
// the refresh cookie max age.
func (f *Factory) RefreshTTL() time.Duration { return f.refreshTTL }

// AccessToken mints a short-lived token carrying the user's role name.
// A role_id that does not resolve in the registry is a data-integrity
// violation: users must always reference an existing role.
func (f *Factory) AccessToken(user *domain.User) (string, error) {
	roleName, ok := f.registry.NameOf(user.RoleID)
	if !ok {
		return "", fmt.Errorf("user %q has unknown role id %d: %w", user.Username, user.RoleID, domain.ErrRoleNotFound)
	}

	now := time.Now()
	return f.codec.Encode(&Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    f.issuer,
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(f.accessTTL)),
		},
		TokenType: TypeAccess,
		Role:      roleName,
	})
}

// RefreshToken mints a long-lived token with no role claim.
func (f *Factory) RefreshToken(user *domain.User) (string, error) {
	now := time.Now()
	return f.codec.Encode(&Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    f.issuer,
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(f.refreshTTL)),
		},
		TokenType: TypeRefresh,
	})
}
