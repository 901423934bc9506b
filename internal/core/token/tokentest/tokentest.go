// Package tokentest provides token helpers for tests: a throwaway RSA
// key pair and a ready-to-use codec built from it.
package tokentest

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/cineplex/reservation-system/internal/core/token"
)

// KeyPair generates a fresh 2048-bit RSA key pair in PEM encoding.
func KeyPair(t *testing.T) (privPEM, pubPEM []byte) {
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

// NewCodec returns an RS256 codec backed by a fresh key pair.
func NewCodec(t *testing.T) *token.Codec {
	t.Helper()

	privPEM, pubPEM := KeyPair(t)
	codec, err := token.NewCodec(privPEM, pubPEM, "RS256")
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return codec
}
