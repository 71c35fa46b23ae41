package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification:
// malformed bytes, wrong signature, or past expiry. Callers cannot tell these
// apart, which is intentional.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload embedded in issued tokens.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// KeyConfig locates the RSA key pair and sets token lifetime. The public key
// path may be supplied alone for a verify-only service.
type KeyConfig struct {
	PrivateKeyPath string
	PublicKeyPath  string
	TTL            time.Duration
}

// TokenService issues and verifies RS256-signed identity tokens. Signing uses
// the private key; verification needs only the public key, so a verifier can
// run without access to signing material.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	ttl        time.Duration
}

// NewTokenService constructs a service from in-memory keys. privateKey may be
// nil for a verify-only service.
func NewTokenService(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, ttl time.Duration) *TokenService {
	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		ttl:        ttl,
	}
}

// LoadTokenService reads the PEM key pair named by cfg and builds the service.
func LoadTokenService(cfg KeyConfig) (*TokenService, error) {
	pubPEM, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	var privateKey *rsa.PrivateKey
	if cfg.PrivateKeyPath != "" {
		privPEM, err := os.ReadFile(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("read private key: %w", err)
		}
		privateKey, err = jwt.ParseRSAPrivateKeyFromPEM(privPEM)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
	}

	return NewTokenService(privateKey, publicKey, cfg.TTL), nil
}

// Issue signs a token carrying the user id, valid for the configured TTL.
func (s *TokenService) Issue(userID int64) (string, error) {
	if s.privateKey == nil {
		return "", fmt.Errorf("token service has no signing key")
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token string. Every failure
// collapses to ErrInvalidToken with nil claims; the underlying parse error is
// never exposed.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, ErrInvalidToken
		}
		return s.publicKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
