package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ServiceTokenIssuer = "shop-backoffice-console"
	ServiceTokenTTL    = 5 * time.Minute
)

// GenerateServiceToken signs a short-lived HS256 token the console sends on API calls.
func GenerateServiceToken(secret, subject string) (string, error) {
	if secret == "" {
		return "", errors.New("service token secret is empty")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    ServiceTokenIssuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ServiceTokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseServiceToken validates signature, expiry and issuer and returns the subject.
func ParseServiceToken(secret, raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ServiceTokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("service token: %w", err)
	}
	return claims.Subject, nil
}
