// Copyright (c) 2026 Travelpack. All rights reserved.

// Package sec provides cryptographic primitives and session token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, token
// signing) from the domain logic. The auth service and the auth middleware
// consume it through small interfaces.
package sec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. They are kept distinct so the middleware can
// report a specific code and tests can assert on the exact kind.
var (
	ErrTokenMissing          = errors.New("sec: token is missing")
	ErrTokenMalformed        = errors.New("sec: token is malformed")
	ErrTokenExpired          = errors.New("sec: token is expired")
	ErrTokenSignatureInvalid = errors.New("sec: token signature is invalid")

	// ErrTokenUnknownUser is returned by identity resolvers when a well-formed
	// token names a user that no longer exists.
	ErrTokenUnknownUser = errors.New("sec: token subject is not a known user")

	// ErrWeakSecret is returned at startup when the signing secret is too short.
	ErrWeakSecret = errors.New("sec: token secret is too short")
)

// SessionClaims is the payload embedded in a session token.
type SessionClaims struct {
	jwt.RegisteredClaims

	Username string `json:"username"`
}

// TokenService issues and verifies HS256 session tokens.
//
// The secret is loaded once at startup and never leaves this struct.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the wall clock used for issuance and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) {
		service.now = now
	}
}

// WithTTL overrides the token lifetime.
func WithTTL(ttl time.Duration) TokenOption {
	return func(service *TokenService) {
		service.ttl = ttl
	}
}

// NewTokenService creates a new TokenService.
//
// It fails when the secret is shorter than minSecretLength bytes.
func NewTokenService(secret, issuer string, ttl time.Duration, minSecretLength int, options ...TokenOption) (*TokenService, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrWeakSecret, minSecretLength)
	}

	service := &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, option := range options {
		option(service)
	}

	return service, nil
}

// Issue creates a signed token for username, valid for the configured TTL.
func (service *TokenService) Issue(username string) (string, error) {
	currentTime := service.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and expiry of tokenString and returns the
// embedded username.
//
// A token is valid strictly before its expiry instant; there is no leeway.
// Any algorithm other than HS256 counts as an invalid signature.
func (service *TokenService) Verify(tokenString string) (string, error) {
	if strings.TrimSpace(tokenString) == "" {
		return "", ErrTokenMissing
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(service.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(service.issuer),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", fmt.Errorf("%w: %w", ErrTokenSignatureInvalid, err)
	default:
		return "", fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}

	if claims.Username == "" {
		return "", fmt.Errorf("%w: username claim is empty", ErrTokenMalformed)
	}

	return claims.Username, nil
}
