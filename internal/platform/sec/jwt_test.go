// Copyright (c) 2026 Travelpack. All rights reserved.

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelpack/travelpack/internal/platform/sec"
)

const (
	testSecret  = "0123456789abcdef0123456789abcdef"
	otherSecret = "fedcba9876543210fedcba9876543210"
	testIssuer  = "travelpack-test"
)

// fakeClock is a settable time source shared by issuer and verifier.
type fakeClock struct {
	current time.Time
}

func (clock *fakeClock) Now() time.Time { return clock.current }

func newTokenService(t *testing.T, secret string, clock *fakeClock) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(secret, testIssuer, 24*time.Hour, 32, sec.WithClock(clock.Now))
	require.NoError(t, err)
	return service
}

/*
TestTokenService_ExpiryWindow verifies the token lifetime boundaries.
*/
func TestTokenService_ExpiryWindow(t *testing.T) {
	issuedAt := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		expired bool
	}{
		{"immediately", 0, false},
		{"one_hour", time.Hour, false},
		{"23h59m", 23*time.Hour + 59*time.Minute, false},
		{"23h59m59s", 24*time.Hour - time.Second, false},
		{"exactly_24h", 24 * time.Hour, true},
		{"24h_plus_1s", 24*time.Hour + time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{current: issuedAt}
			service := newTokenService(t, testSecret, clock)

			token, err := service.Issue("alice")
			require.NoError(t, err)

			clock.current = issuedAt.Add(tt.elapsed)
			username, err := service.Verify(token)

			if tt.expired {
				require.ErrorIs(t, err, sec.ErrTokenExpired)
				assert.NotErrorIs(t, err, sec.ErrTokenSignatureInvalid)
				assert.Empty(t, username)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", username)
		})
	}
}

/*
TestTokenService_ForeignSecret checks that a token signed elsewhere is rejected
as an invalid signature, not as malformed or expired.
*/
func TestTokenService_ForeignSecret(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	issuer := newTokenService(t, otherSecret, clock)
	verifier := newTokenService(t, testSecret, clock)

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, sec.ErrTokenSignatureInvalid)
	assert.NotErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_ExpiredForeignToken makes sure the signature check wins over
expiry for a token that is both expired and forged.
*/
func TestTokenService_ExpiredForeignToken(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := &fakeClock{current: issuedAt}
	issuer := newTokenService(t, otherSecret, clock)
	verifier := newTokenService(t, testSecret, clock)

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	clock.current = issuedAt.Add(48 * time.Hour)
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, sec.ErrTokenSignatureInvalid)
}

/*
TestTokenService_TamperedPayload swaps the claims segment between two tokens.
*/
func TestTokenService_TamperedPayload(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	service := newTokenService(t, testSecret, clock)

	aliceToken, err := service.Issue("alice")
	require.NoError(t, err)
	malloryToken, err := service.Issue("mallory")
	require.NoError(t, err)

	alice := strings.Split(aliceToken, ".")
	mallory := strings.Split(malloryToken, ".")
	forged := strings.Join([]string{alice[0], mallory[1], alice[2]}, ".")

	_, err = service.Verify(forged)
	require.ErrorIs(t, err, sec.ErrTokenSignatureInvalid)
}

/*
TestTokenService_NoneAlgorithm rejects unsigned tokens.
*/
func TestTokenService_NoneAlgorithm(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	service := newTokenService(t, testSecret, clock)

	claims := sec.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(clock.current.Add(time.Hour)),
		},
		Username: "alice",
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.Verify(unsigned)
	require.ErrorIs(t, err, sec.ErrTokenSignatureInvalid)
}

/*
TestTokenService_MalformedAndMissing covers inputs that are not tokens at all.
*/
func TestTokenService_MalformedAndMissing(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	service := newTokenService(t, testSecret, clock)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", sec.ErrTokenMissing},
		{"whitespace", "   ", sec.ErrTokenMissing},
		{"single_segment", "garbage", sec.ErrTokenMalformed},
		{"bad_segments", "not.a.jwt", sec.ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Verify(tt.token)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

/*
TestTokenService_MissingExpiry treats a correctly signed token without exp as malformed.
*/
func TestTokenService_MissingExpiry(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	service := newTokenService(t, testSecret, clock)

	claims := sec.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: testIssuer},
		Username:         "alice",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = service.Verify(token)
	require.ErrorIs(t, err, sec.ErrTokenMalformed)
}

func TestNewTokenService_WeakSecret(t *testing.T) {
	_, err := sec.NewTokenService("short", testIssuer, time.Hour, 32)
	require.ErrorIs(t, err, sec.ErrWeakSecret)
}
