// Package auth issues and validates the tokens bot relays present to the
// command endpoint.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager signs and validates HS256 relay tokens.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// GenerateRelayToken creates a signed token naming relay as its subject.
func (m *JWTManager) GenerateRelayToken(relay string) (string, error) {
	if relay == "" {
		return "", errors.New("relay name is empty")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   relay,
		Issuer:    m.issuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateRelayToken parses and validates a relay token and returns the
// relay name.
func (m *JWTManager) ValidateRelayToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errors.New("token is empty")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return "", errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}

	return claims.Subject, nil
}
