// Copyright (c) 2026 Travelpack. All rights reserved.

package generative

import (
	"context"
	"log/slog"
	"time"

	"github.com/travelpack/travelpack/internal/platform/ctxutil"
)

// CallObserver receives one observation per model call.
type CallObserver interface {
	ObserveCollaboratorCall(operation string, err error, elapsed time.Duration)
}

// Instrumented decorates a [Generator] with metrics and structured logs.
// Prompts and replies are never logged, only their sizes.
type Instrumented struct {
	next     Generator
	observer CallObserver
}

// NewInstrumented wraps next.
func NewInstrumented(next Generator, observer CallObserver) *Instrumented {
	return &Instrumented{next: next, observer: observer}
}

// Generate forwards to the wrapped generator and records the outcome.
func (instrumented *Instrumented) Generate(ctx context.Context, prompt string) (string, error) {
	operation := OperationFrom(ctx)
	startTime := time.Now()

	reply, err := instrumented.next.Generate(ctx, prompt)
	elapsed := time.Since(startTime)

	instrumented.observer.ObserveCollaboratorCall(operation, err, elapsed)

	logger := ctxutil.GetLogger(ctx)
	if err != nil {
		logger.WarnContext(ctx, "collaborator_call_failed",
			slog.String("operation", operation),
			slog.Int64("latency_ms", elapsed.Milliseconds()),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	logger.InfoContext(ctx, "collaborator_call_finished",
		slog.String("operation", operation),
		slog.Int64("latency_ms", elapsed.Milliseconds()),
		slog.Int("prompt_bytes", len(prompt)),
		slog.Int("reply_bytes", len(reply)),
	)
	return reply, nil
}
