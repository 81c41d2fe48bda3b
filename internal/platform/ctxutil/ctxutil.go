// Copyright (c) 2026 Travelpack. All rights reserved.

// Package ctxutil reads and writes the request-scoped values kept in
// [context.Context]: correlation id, logger and authenticated caller.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/travelpack/travelpack/internal/platform/ctxkey"
	"github.com/travelpack/travelpack/internal/platform/sec"
)

// WithRequestID attaches the correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the correlation id, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// WithLogger attaches a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request logger, falling back to [slog.Default] so
// code running outside a request can log unconditionally.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithIdentity attaches the authenticated caller.
func WithIdentity(ctx context.Context, identity *sec.Identity) context.Context {
	return context.WithValue(ctx, ctxkey.KeyIdentity, identity)
}

// GetIdentity returns the authenticated caller, or nil before the auth gate.
func GetIdentity(ctx context.Context) *sec.Identity {
	identity, _ := ctx.Value(ctxkey.KeyIdentity).(*sec.Identity)
	return identity
}
