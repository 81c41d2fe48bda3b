// Copyright (c) 2026 Travelpack. All rights reserved.

/*
Package generative wraps the external text-generation model behind a single
call.

The rest of the service treats the model as an opaque function from prompt to
text that may fail. Nothing here retries: a failure is returned to the caller
as-is.

Implementations:

  - Gemini: Google Gemini via google.golang.org/genai.
  - Instrumented: a decorator adding Prometheus metrics and slog events.
*/
package generative

import (
	"context"
	"errors"
)

// ErrEmptyReply is returned when the model answers with no text.
var ErrEmptyReply = errors.New("generative: model returned an empty reply")

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to [Generator].
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type operationKey struct{}

// DefaultOperation labels calls made without [WithOperation].
const DefaultOperation = "generate"

// WithOperation tags ctx so instrumentation can tell call sites apart.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationKey{}, operation)
}

// OperationFrom returns the operation tag, or [DefaultOperation].
func OperationFrom(ctx context.Context) string {
	if operation, ok := ctx.Value(operationKey{}).(string); ok && operation != "" {
		return operation
	}
	return DefaultOperation
}
