// Copyright (c) 2026 Travelpack. All rights reserved.

// Package ctxkey defines the context keys shared by middleware and handlers.
// The key type is unexported so no other package can collide with them.
package ctxkey

type key int

const (
	// KeyRequestID holds the X-Request-ID correlation value.
	KeyRequestID key = iota

	// KeyIdentity holds the authenticated caller ([sec.Identity]).
	KeyIdentity

	// KeyLogger holds the per-request [*log/slog.Logger].
	KeyLogger
)
