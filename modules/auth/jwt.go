package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token fails decoding or signature
	// verification, or carries no subject.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token has expired")
)

// TokenManager issues and verifies signed bearer tokens. It is stateless:
// there is no token registry and no revocation list.
type TokenManager struct {
	secretKey []byte
	method    jwt.SigningMethod
	ttl       time.Duration
	issuer    string
}

// NewTokenManager creates a TokenManager from the given configuration.
// It fails if the configured algorithm is not an HMAC method.
func NewTokenManager(config Config) (*TokenManager, error) {
	method, err := signingMethod(config.Algorithm)
	if err != nil {
		return nil, err
	}
	return &TokenManager{
		secretKey: []byte(config.SecretKey),
		method:    method,
		ttl:       config.TokenTTL,
		issuer:    config.Issuer,
	}, nil
}

// signingMethod resolves an algorithm name to a jwt HMAC signing method.
func signingMethod(name string) (jwt.SigningMethod, error) {
	switch name {
	case "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", name)
	}
}

// Issue creates a signed token for the given subject, expiring after the
// configured TTL.
func (m *TokenManager) Issue(subject string) (string, error) {
	return m.IssueWithTTL(subject, m.ttl)
}

// IssueWithTTL creates a signed token with an explicit TTL.
func (m *TokenManager) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(m.method, claims)
	return token.SignedString(m.secretKey)
}

// Verify checks the token's signature and expiry and returns its subject.
// All decode and signature failures collapse into ErrInvalidToken; only
// expiry is distinguished, and callers must not surface that distinction.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != m.method.Alg() {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// TokenTTL returns the configured token lifetime in seconds.
func (m *TokenManager) TokenTTL() int64 {
	return int64(m.ttl.Seconds())
}
