package token

import "github.com/golang-jwt/jwt/v5"

// Token types carried in the token_type claim. A token of one type is
// never accepted where the other is expected.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims is the payload embedded in every signed token. Access tokens
// carry the user's role at issuance time; refresh tokens do not, because
// the role may change and must be re-derived from the user record when
// the refresh token is redeemed.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
	Role      string `json:"role,omitempty"`
}
