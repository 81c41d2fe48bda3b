// Copyright (c) 2026 Travelpack. All rights reserved.

// Package auth owns user accounts: registration, credential checks and the
// identity lookup used by the authentication gate.
//
// # Architecture
//
// The package is layered the same way as every domain package:
//   - user.go: entities
//   - store.go: the repository contract
//   - store_postgres.go: the pgx implementation
//   - service.go: use cases
//   - http.go: the HTTP delivery layer
//
// Nothing outside this package reads a password hash.
package auth

import (
	"time"
)

// Username and password bounds. bcrypt ignores input past 72 bytes.
const (
	UsernameMinLength = 3
	UsernameMaxLength = 64
	PasswordMinLength = 6
	PasswordMaxBytes  = 72
)

// User represents a registered account.
//
// # Rules
//   - Username is unique, case-sensitive and immutable.
//   - PasswordHash is produced by bcrypt in [Service.Register] only.
//   - Accounts are never updated or deleted.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the result of a successful login.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
