package token

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/roles"
)

func jwtFuture() *jwt.NumericDate {
	return jwt.NewNumericDate(time.Now().Add(time.Hour))
}

func generateKeyPair(t *testing.T) (privPEM, pubPEM []byte) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}

	privPEM = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM = pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubDER,
	})

	return privPEM, pubPEM
}

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	privPEM, pubPEM := generateKeyPair(t)
	codec, err := NewCodec(privPEM, pubPEM, "RS256")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return codec
}

func testRegistry() *roles.Registry {
	return roles.NewRegistry([]domain.Role{
		{ID: 1, Name: domain.RoleAdmin},
		{ID: 2, Name: domain.RoleStaff},
		{ID: 3, Name: domain.RoleCustomer},
	})
}

func testUser() *domain.User {
	return &domain.User{
		ID:       "u1",
		Username: "alice",
		RoleID:   1,
		IsActive: true,
	}
}

func TestNewCodec_BadKeyMaterial(t *testing.T) {
	privPEM, pubPEM := generateKeyPair(t)

	if _, err := NewCodec([]byte("garbage"), pubPEM, "RS256"); err == nil {
		t.Fatalf("expected error for bad private key")
	}
	if _, err := NewCodec(privPEM, []byte("garbage"), "RS256"); err == nil {
		t.Fatalf("expected error for bad public key")
	}
}

func TestNewCodec_RejectsSymmetricAlgorithm(t *testing.T) {
	privPEM, pubPEM := generateKeyPair(t)

	_, err := NewCodec(privPEM, pubPEM, "HS256")
	if !errors.Is(err, ErrInvalidSigningMethod) {
		t.Fatalf("expected ErrInvalidSigningMethod, got %v", err)
	}
}

func TestFactoryVerifier_AccessRoundTrip(t *testing.T) {
	codec := newTestCodec(t)
	factory := NewFactory(codec, testRegistry(), "cineplex", time.Hour, 30*24*time.Hour)
	verifier := NewVerifier(codec)

	signed, err := factory.AccessToken(testUser())
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := verifier.Verify(signed, TypeAccess)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("subject = %q, want alice", claims.Subject)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("role = %q, want %q", claims.Role, domain.RoleAdmin)
	}
	if claims.TokenType != TypeAccess {
		t.Fatalf("token_type = %q, want %q", claims.TokenType, TypeAccess)
	}
	if claims.Issuer != "cineplex" {
		t.Fatalf("issuer = %q, want cineplex", claims.Issuer)
	}
}

func TestFactory_RefreshTokenHasNoRole(t *testing.T) {
	codec := newTestCodec(t)
	factory := NewFactory(codec, testRegistry(), "cineplex", time.Hour, 30*24*time.Hour)

	signed, err := factory.RefreshToken(testUser())
	if err != nil {
		t.Fatalf("mint refresh token: %v", err)
	}

	claims, err := codec.Decode(signed)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.Role != "" {
		t.Fatalf("refresh token must not carry a role, got %q", claims.Role)
	}
	if claims.TokenType != TypeRefresh {
		t.Fatalf("token_type = %q, want %q", claims.TokenType, TypeRefresh)
	}
}

func TestFactory_UnknownRoleID(t *testing.T) {
	codec := newTestCodec(t)
	factory := NewFactory(codec, testRegistry(), "cineplex", time.Hour, time.Hour)

	user := testUser()
	user.RoleID = 42
	_, err := factory.AccessToken(user)
	if !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestVerifier_WrongTokenType(t *testing.T) {
	codec := newTestCodec(t)
	factory := NewFactory(codec, testRegistry(), "cineplex", time.Hour, time.Hour)
	verifier := NewVerifier(codec)

	refresh, err := factory.RefreshToken(testUser())
	if err != nil {
		t.Fatalf("mint refresh token: %v", err)
	}

	if _, err := verifier.Verify(refresh, TypeAccess); !errors.Is(err, domain.ErrInvalidTokenType) {
		t.Fatalf("expected ErrInvalidTokenType, got %v", err)
	}
}

func TestVerifier_ExpiredToken(t *testing.T) {
	codec := newTestCodec(t)
	factory := NewFactory(codec, testRegistry(), "cineplex", -time.Minute, -time.Minute)
	verifier := NewVerifier(codec)

	signed, err := factory.AccessToken(testUser())
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := verifier.Verify(signed, TypeAccess); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

// Type is checked before expiry, so an expired refresh token presented
// where an access token is expected reports the type problem.
func TestVerifier_TypeCheckedBeforeExpiry(t *testing.T) {
	codec := newTestCodec(t)
	factory := NewFactory(codec, testRegistry(), "cineplex", -time.Minute, -time.Minute)
	verifier := NewVerifier(codec)

	refresh, err := factory.RefreshToken(testUser())
	if err != nil {
		t.Fatalf("mint refresh token: %v", err)
	}

	if _, err := verifier.Verify(refresh, TypeAccess); !errors.Is(err, domain.ErrInvalidTokenType) {
		t.Fatalf("expected ErrInvalidTokenType, got %v", err)
	}
}

func TestVerifier_MalformedToken(t *testing.T) {
	verifier := NewVerifier(newTestCodec(t))

	if _, err := verifier.Verify("not.a.token", TypeAccess); !errors.Is(err, domain.ErrWrongCredentials) {
		t.Fatalf("expected ErrWrongCredentials, got %v", err)
	}
}

func TestVerifier_ForeignSignature(t *testing.T) {
	minting := newTestCodec(t)
	factory := NewFactory(minting, testRegistry(), "cineplex", time.Hour, time.Hour)

	signed, err := factory.AccessToken(testUser())
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	// A verifier with a different key pair must reject the token.
	verifier := NewVerifier(newTestCodec(t))
	if _, err := verifier.Verify(signed, TypeAccess); !errors.Is(err, domain.ErrWrongCredentials) {
		t.Fatalf("expected ErrWrongCredentials, got %v", err)
	}
}

func TestVerifier_MissingExpiry(t *testing.T) {
	codec := newTestCodec(t)
	verifier := NewVerifier(codec)

	claims := &Claims{TokenType: TypeAccess}
	claims.Subject = "alice"
	signed, err := codec.Encode(claims)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := verifier.Verify(signed, TypeAccess); !errors.Is(err, domain.ErrInvalidTokenData) {
		t.Fatalf("expected ErrInvalidTokenData, got %v", err)
	}
}

func TestVerifier_MissingSubject(t *testing.T) {
	codec := newTestCodec(t)
	verifier := NewVerifier(codec)

	claims := &Claims{TokenType: TypeAccess}
	claims.ExpiresAt = jwtFuture()
	signed, err := codec.Encode(claims)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := verifier.Verify(signed, TypeAccess); !errors.Is(err, domain.ErrWrongCredentials) {
		t.Fatalf("expected ErrWrongCredentials, got %v", err)
	}
}
