// Copyright (c) 2026 Travelpack. All rights reserved.

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// Users and trips are keyed by UUIDv7 so rows insert in roughly creation order.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source is unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Canonical parses value as any RFC 4122 UUID and returns its lowercase
// hyphenated form. The second result is false for anything unparseable.
func Canonical(value string) (string, bool) {
	id, err := uuid.Parse(value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
