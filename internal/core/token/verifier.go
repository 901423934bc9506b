package token

import (
	"time"

	"github.com/cineplex/reservation-system/internal/core/domain"
)

// Verifier validates raw token strings against an expected token type.
type Verifier struct {
	codec *Codec
}

func NewVerifier(codec *Codec) *Verifier {
	return &Verifier{codec: codec}
}

// Verify checks the token in a fixed order: signature first (an
// unverified payload is never inspected), then token type (a wrong-type
// token must not leak whether it is expired), then expiration, then
// subject. Each failure maps to one member of the error taxonomy.
func (v *Verifier) Verify(tokenString, expectedType string) (*Claims, error) {
	claims, err := v.codec.Decode(tokenString)
	if err != nil {
		return nil, domain.ErrWrongCredentials
	}

	if claims.TokenType != expectedType {
		return nil, domain.ErrInvalidTokenType
	}

	if claims.ExpiresAt == nil {
		return nil, domain.ErrInvalidTokenData
	}
	if !claims.ExpiresAt.After(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	if claims.Subject == "" {
		return nil, domain.ErrWrongCredentials
	}

	return claims, nil
}
