// Copyright (c) 2026 Travelpack. All rights reserved.

// Package middleware provides the HTTP middleware chain for the Travelpack API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, Authentication, Rate Limiting, Metrics and CORS.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/travelpack/travelpack/internal/platform/apperr"
	"github.com/travelpack/travelpack/internal/platform/constants"
	"github.com/travelpack/travelpack/internal/platform/ctxutil"
	"github.com/travelpack/travelpack/internal/platform/respond"
	"github.com/travelpack/travelpack/internal/platform/sec"
)

// TokenVerifier checks a bearer token and returns the username it was issued to.
//
// Defined here so the gate does not depend on the concrete [sec.TokenService].
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// IdentityResolver maps a verified username to the stored account.
//
// Implementations return [sec.ErrTokenUnknownUser] when the account no longer exists.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, username string) (*sec.Identity, error)
}

// Authenticate rejects any request without a valid session token.
//
// # Flow
//  1. Require an 'Authorization: Bearer <token>' header.
//  2. Verify signature and expiry via [TokenVerifier].
//  3. Resolve the token subject to a stored account via [IdentityResolver].
//  4. Inject [*sec.Identity] into the request context for downstream use.
//
// Every token failure answers 401 with the same message; only the code differs.
func Authenticate(verifier TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Header Extraction ──────────────────────────────────────────
			token, ok := bearerToken(request.Header.Get(constants.HeaderAuthorization))
			if !ok {
				respond.Error(writer, request, apperr.TokenRejected(apperr.CodeMissingToken, sec.ErrTokenMissing))
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			username, err := verifier.Verify(token)
			if err != nil {
				respond.Error(writer, request, apperr.TokenRejected(tokenErrorCode(err), err))
				return
			}

			// ── 3. Identity Resolution ────────────────────────────────────────
			identity, err := resolver.ResolveIdentity(request.Context(), username)
			if err != nil {
				if errors.Is(err, sec.ErrTokenUnknownUser) {
					respond.Error(writer, request, apperr.TokenRejected(apperr.CodeInvalidToken, err))
					return
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			noteUser(ctx, identity.UserID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token after the literal "Bearer " prefix.
func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, constants.BearerPrefix)
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func tokenErrorCode(err error) string {
	switch {
	case errors.Is(err, sec.ErrTokenMissing):
		return apperr.CodeMissingToken
	case errors.Is(err, sec.ErrTokenExpired):
		return apperr.CodeExpiredToken
	case errors.Is(err, sec.ErrTokenSignatureInvalid):
		return apperr.CodeInvalidSignature
	case errors.Is(err, sec.ErrTokenMalformed):
		return apperr.CodeMalformedToken
	default:
		return apperr.CodeInvalidToken
	}
}
