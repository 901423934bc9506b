package domain

import (
	"errors"
	"time"
)

// Authentication failure taxonomy. ErrWrongCredentials is deliberately
// generic: it covers bad username, bad password, bad signature and missing
// subject so clients cannot tell which factor failed.
var ErrWrongCredentials = errors.New("wrong credentials")
var ErrInvalidTokenType = errors.New("invalid token type")
var ErrTokenExpired = errors.New("token expired")
var ErrInvalidTokenData = errors.New("invalid token data")
var ErrUnauthorized = errors.New("authorization failed")

// TokenPair is returned on a successful login.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}
