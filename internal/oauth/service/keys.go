package service

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/allisson/oauth/internal/errors"
)

// LoadRSAPrivateKey reads a PEM-encoded RSA private key from disk.
func LoadRSAPrivateKey(path string) (*rsa.PrivateKey, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read private key file %q", path)
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to parse private key file %q", path)
	}

	return key, nil
}

// LoadRSAPublicKey reads a PEM-encoded RSA public key from disk.
func LoadRSAPublicKey(path string) (*rsa.PublicKey, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read public key file %q", path)
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to parse public key file %q", path)
	}

	return key, nil
}

// GenerateRSAKeyPair creates a new RSA keypair and returns both halves as PEM
// blocks (PKCS#8 private, PKIX public).
func GenerateRSAKeyPair(bits int) (privatePEM []byte, publicPEM []byte, err error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to generate rsa key")
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal private key")
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal public key")
	}

	privatePEM = pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privateDER})
	publicPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	return privatePEM, publicPEM, nil
}
