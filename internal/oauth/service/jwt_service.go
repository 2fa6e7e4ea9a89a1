package service

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/allisson/oauth/internal/errors"
	oauthDomain "github.com/allisson/oauth/internal/oauth/domain"
)

// Claims is the exact JWT wire shape: {jti, aud, sub, scopes, iat, nbf, exp}.
// The fields are declared explicitly instead of embedding jwt.RegisteredClaims
// so the subject is always emitted (empty for client-credentials tokens) and
// no extra registered claims leak into the payload.
type Claims struct {
	TokenValue string           `json:"jti"`
	Audience   string           `json:"aud"`
	Subject    string           `json:"sub"`
	Scopes     []string         `json:"scopes"`
	IssuedAt   *jwt.NumericDate `json:"iat"`
	NotBefore  *jwt.NumericDate `json:"nbf"`
	ExpiresAt  *jwt.NumericDate `json:"exp"`
}

// GetExpirationTime implements jwt.Claims.
func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) { return c.ExpiresAt, nil }

// GetIssuedAt implements jwt.Claims.
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) { return c.IssuedAt, nil }

// GetNotBefore implements jwt.Claims.
func (c Claims) GetNotBefore() (*jwt.NumericDate, error) { return c.NotBefore, nil }

// GetIssuer implements jwt.Claims.
func (c Claims) GetIssuer() (string, error) { return "", nil }

// GetSubject implements jwt.Claims.
func (c Claims) GetSubject() (string, error) { return c.Subject, nil }

// GetAudience implements jwt.Claims.
func (c Claims) GetAudience() (jwt.ClaimStrings, error) {
	if c.Audience == "" {
		return nil, nil
	}
	return jwt.ClaimStrings{c.Audience}, nil
}

// jwtService implements JWTService with RS256. The private key signs, the
// public key verifies; the two paths never share key material beyond belonging
// to the same pair.
type jwtService struct {
	privateKey      *rsa.PrivateKey
	publicKey       *rsa.PublicKey
	defaultAudience string
}

// Encode builds the claims for a token and signs them with the private key.
func (s *jwtService) Encode(token *oauthDomain.Token, audience string, subject string) (string, error) {
	if s.privateKey == nil {
		return "", apperrors.New("jwt service has no signing key")
	}

	if audience == "" {
		audience = s.defaultAudience
	}

	now := time.Now().UTC()
	claims := Claims{
		TokenValue: token.Value,
		Audience:   audience,
		Subject:    subject,
		Scopes:     token.Scopes,
		IssuedAt:   jwt.NewNumericDate(now),
		NotBefore:  jwt.NewNumericDate(now),
		ExpiresAt:  jwt.NewNumericDate(token.ExpiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign jwt")
	}

	return signed, nil
}

// Decode parses and verifies a compact JWT against the public key, enforcing
// nbf <= now <= exp.
func (s *jwtService) Decode(signed string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(
		signed,
		claims,
		func(t *jwt.Token) (any, error) {
			return s.publicKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, oauthDomain.ErrJWTExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, oauthDomain.ErrJWTSignatureInvalid
		default:
			return nil, oauthDomain.ErrJWTMalformed
		}
	}

	return claims, nil
}

// NewJWTService creates a JWTService from an RSA keypair. The private key may
// be nil for verify-only consumers (e.g., resource servers that never issue).
func NewJWTService(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, defaultAudience string) JWTService {
	return &jwtService{
		privateKey:      privateKey,
		publicKey:       publicKey,
		defaultAudience: defaultAudience,
	}
}
