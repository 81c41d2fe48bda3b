// Copyright (c) 2026 Travelpack. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/travelpack/travelpack/internal/platform/apperr"
	"github.com/travelpack/travelpack/internal/platform/database/schema"
	"github.com/travelpack/travelpack/internal/platform/dberr"
	"github.com/travelpack/travelpack/internal/platform/postgres"
)

// PostgresUserRepository implements [UserRepository] on the users.account table.
//
// Storage errors are mapped to [apperr.AppError] values via [dberr] so pgx
// types never leak past this file.
type PostgresUserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new PostgreSQL implementation of [UserRepository].
func NewUserRepository(db postgres.DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts a new row into users.account.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4)`,
		schema.UserAccount.Table, strings.Join(schema.UserAccount.Columns(), ", "),
	)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := repository.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			duplicate := apperr.DuplicateUsername()
			duplicate.Cause = err
			return duplicate
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", apperr.Internal(err))
	}

	return nil
}

// FindByUsername retrieves a user by exact, case-sensitive username.
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.UserAccount.SelectList(), schema.UserAccount.Table, schema.UserAccount.Username,
	)

	user := &User{}
	err := repository.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}
