// Copyright (c) 2026 Travelpack. All rights reserved.

package auth

import (
	"context"
)

// UserRepository defines the data access contract for user accounts.
//
// # Implementations
//
// The production implementation is [PostgresUserRepository]; tests use the
// in-memory fake in internal/testutil.
type UserRepository interface {
	// FindByUsername returns the account with the given username.
	//
	// Returns [apperr.NotFound] if the username is available.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a brand-new user account.
	//
	// Returns [apperr.DuplicateUsername] if the username is already taken,
	// including when a concurrent registration wins the race.
	Create(ctx context.Context, user *User) error
}
