// Copyright (c) 2026 Travelpack. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/travelpack/travelpack/internal/platform/apperr"
	"github.com/travelpack/travelpack/internal/platform/sec"
	"github.com/travelpack/travelpack/internal/platform/validate"
	"github.com/travelpack/travelpack/pkg/uuidv7"
)

// TokenIssuer signs session tokens for a username.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// Service implements the account use cases.
//
// # Review Process
//
// This service is critical for security. Changes to hashing, registration or
// credential checks need a second reviewer.
type Service struct {
	users  UserRepository
	tokens TokenIssuer
	logger *slog.Logger
}

// NewService constructs a [Service] with its dependencies.
func NewService(users UserRepository, tokens TokenIssuer, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Username string
	Password string
}

// Validate enforces username and password bounds.
func (input RegisterInput) Validate() error {
	v := &validate.Validator{}
	v.Required("username", input.Username).
		MinLen("username", input.Username, UsernameMinLength).
		MaxLen("username", input.Username, UsernameMaxLength)
	v.Required("password", input.Password).
		MinLen("password", input.Password, PasswordMinLength).
		MaxBytes("password", input.Password, PasswordMaxBytes)
	return v.Err()
}

// Register validates, hashes and persists a new account.
//
// # Returns
//   - The created [*User].
//   - [apperr.ValidationError] for out-of-bounds input.
//   - [apperr.DuplicateUsername] if the username is taken.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	// ── 1. Input Rules ────────────────────────────────────────────────────

	if err := input.Validate(); err != nil {
		return nil, err
	}

	// ── 2. Uniqueness Pre-check ───────────────────────────────────────────

	// The unique index is still the source of truth; this only avoids a
	// wasted bcrypt round for the common case.
	_, err := service.users.FindByUsername(ctx, input.Username)
	switch {
	case err == nil:
		return nil, apperr.DuplicateUsername()
	case !apperr.HasCode(err, apperr.CodeNotFound):
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	// ── 3. Security ───────────────────────────────────────────────────────

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", apperr.Internal(err))
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	user := &User{
		ID:           uuidv7.New(),
		Username:     input.Username,
		PasswordHash: hashedPassword,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Verify checks a username/password pair.
//
// Unknown users and wrong passwords both return [apperr.InvalidCredentials]
// so callers cannot probe which usernames exist.
func (service *Service) Verify(ctx context.Context, username, password string) (*User, error) {
	user, err := service.users.FindByUsername(ctx, username)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.InvalidCredentials()
		}
		return nil, fmt.Errorf("auth_service_verify_lookup_failed: %w", err)
	}

	if !sec.PasswordMatches(user.PasswordHash, password) {
		return nil, apperr.InvalidCredentials()
	}

	return user, nil
}

// Login verifies credentials and issues a session token.
func (service *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := service.Verify(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := service.tokens.Issue(user.Username)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", apperr.Internal(err))
	}

	service.logger.InfoContext(ctx, "user_logged_in", slog.String("user_id", user.ID))

	return &Session{Token: token, Username: user.Username}, nil
}

// ResolveIdentity maps a verified token subject to the stored account.
//
// Returns [sec.ErrTokenUnknownUser] when no account has that username.
func (service *Service) ResolveIdentity(ctx context.Context, username string) (*sec.Identity, error) {
	user, err := service.users.FindByUsername(ctx, username)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, sec.ErrTokenUnknownUser
		}
		return nil, fmt.Errorf("auth_service_resolve_identity_failed: %w", err)
	}

	return &sec.Identity{UserID: user.ID, Username: user.Username}, nil
}
