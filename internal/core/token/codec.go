package token

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSigningMethod = errors.New("unexpected signing method")
var ErrInvalidToken = errors.New("invalid token")

// Codec signs and verifies token payloads with an RSA key pair. Keys are
// parsed once at construction; a process with bad key material must not
// start, so NewCodec fails instead of deferring the problem.
type Codec struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	method     jwt.SigningMethod
}

// NewCodec parses the PEM-encoded key pair and resolves the signing
// algorithm (RS256, RS384 or RS512). Any other algorithm identifier is
// rejected: this codec is asymmetric by design.
func NewCodec(privateKeyPEM, publicKeyPEM []byte, algorithm string) (*Codec, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodRSA); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSigningMethod, algorithm)
	}

	return &Codec{privateKey: privateKey, publicKey: publicKey, method: method}, nil
}

// Encode serializes claims and signs them with the private key.
func (c *Codec) Encode(claims *Claims) (string, error) {
	return jwt.NewWithClaims(c.method, claims).SignedString(c.privateKey)
}

// Decode verifies the signature with the public key and returns the
// claims. Expiration and token type are NOT checked here; that is the
// Verifier's job, and it must happen only after the signature has been
// confirmed.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return c.publicKey, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
